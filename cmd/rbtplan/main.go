// Package main is a command line front end for the RBT-Connect planner: it loads a JSON scene
// description, plans, and writes the resulting path for the external renderer.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/golang/geo/r3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.viam.com/utils"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/rbt/logging"
	"go.viam.com/rbt/motionplan"
	"go.viam.com/rbt/referenceframe"
	"go.viam.com/rbt/spatialmath"
)

type sceneConfig struct {
	URDF         string                 `json:"urdf"`
	EndLink      string                 `json:"end_link"`
	MeshBaseDir  string                 `json:"mesh_base_dir"`
	Obstacles    []obstacleConfig       `json:"obstacles"`
	Start        []float64              `json:"start"`
	Goal         []float64              `json:"goal"`
	PlanningOpts map[string]interface{} `json:"planning_opts"`
}

type obstacleConfig struct {
	Mesh string     `json:"mesh"`
	XYZ  [3]float64 `json:"xyz"`
	RPY  [3]float64 `json:"rpy"`
}

func main() {
	utils.ContextualMain(mainWithArgs, logging.NewLogger("rbtplan").AsZap())
}

func mainWithArgs(ctx context.Context, args []string, _ *zap.SugaredLogger) error {
	app := &cli.App{
		Name:  "rbtplan",
		Usage: "plan a collision-free robot arm path through a scene of mesh obstacles",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scene", Usage: "path to the JSON scene description", Required: true},
			&cli.StringFlag{Name: "out", Usage: "file the planned path is written to, one configuration per line", Value: "path.txt"},
			&cli.StringFlag{Name: "log-file", Usage: "also log to this file"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: runPlan,
	}
	return app.RunContext(ctx, args)
}

func runPlan(c *cli.Context) error {
	logger := logging.NewLogger("rbtplan")
	if c.Bool("debug") {
		logger.SetLevel(logging.DEBUG)
	}
	if logFile := c.String("log-file"); logFile != "" {
		appender, closer, err := logging.NewFileAppender(logFile)
		if err != nil {
			return err
		}
		defer closer.Close() //nolint:errcheck
		logger.AddAppender(appender)
	}

	sceneData, err := os.ReadFile(c.String("scene"))
	if err != nil {
		return err
	}
	var scene sceneConfig
	if err := json.Unmarshal(sceneData, &scene); err != nil {
		return errors.Wrap(err, "parsing scene description")
	}

	opt, err := motionplan.NewPlannerOptionsFromMap(scene.PlanningOpts)
	if err != nil {
		return err
	}
	planner, err := motionplan.NewURDFPlanner(scene.URDF, &referenceframe.URDFConfig{
		EndLink:     scene.EndLink,
		MeshBaseDir: scene.MeshBaseDir,
	}, opt, logger)
	if err != nil {
		return err
	}
	for _, obstacle := range scene.Obstacles {
		pose := spatialmath.NewPose(
			r3.Vector{X: obstacle.XYZ[0], Y: obstacle.XYZ[1], Z: obstacle.XYZ[2]},
			spatialmath.NewEulerAngles(obstacle.RPY[0], obstacle.RPY[1], obstacle.RPY[2]),
		)
		if err := planner.AddObstacle(obstacle.Mesh, pose); err != nil {
			return err
		}
	}

	logger.Infof("planning for %q with %d joints and %d obstacles", planner.Model().Name(), planner.NrOfJoints(), len(scene.Obstacles))
	begin := time.Now()
	path, err := planner.PlanPath(c.Context, scene.Start, scene.Goal)
	if err != nil {
		return err
	}
	elapsed := time.Since(begin)

	out, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	defer out.Close() //nolint:errcheck
	if err := motionplan.WritePath(out, path); err != nil {
		return err
	}

	length := 0.
	for i := 0; i+1 < len(path); i++ {
		length += floats.Distance(path[i], path[i+1], 2)
	}
	summary := table.NewWriter()
	summary.SetOutputMirror(os.Stdout)
	summary.AppendHeader(table.Row{"joints", "waypoints", "path length [rad]", "duration"})
	summary.AppendRow(table.Row{planner.NrOfJoints(), len(path), length, elapsed.Round(time.Millisecond)})
	summary.Render()
	return nil
}
