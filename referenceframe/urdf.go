package referenceframe

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/golang/geo/r3"

	"go.viam.com/rbt/spatialmath"
)

// URDF XML schema, restricted to what the chain assembly consumes.
type urdfRobot struct {
	XMLName xml.Name    `xml:"robot"`
	Name    string      `xml:"name,attr"`
	Links   []urdfLink  `xml:"link"`
	Joints  []urdfJoint `xml:"joint"`
}

type urdfLink struct {
	Name      string         `xml:"name,attr"`
	Collision *urdfCollision `xml:"collision"`
}

type urdfCollision struct {
	Origin   *urdfOrigin  `xml:"origin"`
	Geometry urdfGeometry `xml:"geometry"`
}

type urdfGeometry struct {
	Mesh *urdfMesh `xml:"mesh"`
	Box  *urdfBox  `xml:"box"`
}

type urdfMesh struct {
	Filename string `xml:"filename,attr"`
}

type urdfBox struct {
	Size string `xml:"size,attr"`
}

type urdfJoint struct {
	Name   string      `xml:"name,attr"`
	Type   string      `xml:"type,attr"`
	Parent urdfParent  `xml:"parent"`
	Child  urdfChild   `xml:"child"`
	Origin *urdfOrigin `xml:"origin"`
	Axis   *urdfAxis   `xml:"axis"`
	Limit  *urdfLimit  `xml:"limit"`
}

type urdfParent struct {
	Link string `xml:"link,attr"`
}

type urdfChild struct {
	Link string `xml:"link,attr"`
}

type urdfOrigin struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

type urdfAxis struct {
	XYZ string `xml:"xyz,attr"`
}

type urdfLimit struct {
	Lower float64 `xml:"lower,attr"`
	Upper float64 `xml:"upper,attr"`
}

// URDFConfig adjusts how a URDF file is turned into a Model.
type URDFConfig struct {
	// Name overrides the robot name attribute.
	Name string
	// EndLink names the leaf link the chain is built toward. Defaults to the first link in
	// document order that no joint uses as a parent.
	EndLink string
	// MeshBaseDir is the directory collision mesh filenames are resolved against. Defaults to
	// the directory of the URDF file.
	MeshBaseDir string
}

// ParseURDFFile reads a URDF robot description and assembles the chain from the root link to
// the configured end link.
func ParseURDFFile(path string, cfg *URDFConfig) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrModelInvalid, "%s: %v", path, err)
	}
	if cfg == nil {
		cfg = &URDFConfig{}
	}
	if cfg.MeshBaseDir == "" {
		resolved := *cfg
		resolved.MeshBaseDir = filepath.Dir(path)
		cfg = &resolved
	}
	return UnmarshalURDF(data, cfg)
}

// UnmarshalURDF assembles a Model from raw URDF bytes.
func UnmarshalURDF(data []byte, cfg *URDFConfig) (*Model, error) {
	if cfg == nil {
		cfg = &URDFConfig{}
	}
	var robot urdfRobot
	if err := xml.Unmarshal(data, &robot); err != nil {
		return nil, errors.Wrapf(ErrModelInvalid, "parsing urdf: %v", err)
	}

	name := robot.Name
	if cfg.Name != "" {
		name = cfg.Name
	}

	links := map[string]*urdfLink{}
	for i := range robot.Links {
		links[robot.Links[i].Name] = &robot.Links[i]
	}
	jointToChild := map[string]*urdfJoint{}
	isChild := map[string]bool{}
	isParent := map[string]bool{}
	for i := range robot.Joints {
		j := &robot.Joints[i]
		if _, ok := links[j.Parent.Link]; !ok {
			return nil, errors.Wrapf(ErrModelInvalid, "joint %q names unknown parent link %q", j.Name, j.Parent.Link)
		}
		if _, ok := links[j.Child.Link]; !ok {
			return nil, errors.Wrapf(ErrModelInvalid, "joint %q names unknown child link %q", j.Name, j.Child.Link)
		}
		jointToChild[j.Child.Link] = j
		isChild[j.Child.Link] = true
		isParent[j.Parent.Link] = true
	}

	var root string
	for _, l := range robot.Links {
		if !isChild[l.Name] {
			root = l.Name
			break
		}
	}
	if root == "" {
		return nil, errors.Wrapf(ErrModelInvalid, "%s: no root link", name)
	}

	end := cfg.EndLink
	if end == "" {
		for _, l := range robot.Links {
			if !isParent[l.Name] {
				end = l.Name
				break
			}
		}
	}
	if _, ok := links[end]; !ok {
		return nil, errors.Wrapf(ErrModelInvalid, "%s: end link %q not found", name, end)
	}

	// Walk child-to-parent from the end link up to the root, then reverse into chain order.
	var chain []*urdfJoint
	for link := end; link != root; {
		j, ok := jointToChild[link]
		if !ok {
			return nil, errors.Wrapf(ErrModelInvalid, "%s: chain from %q breaks at link %q", name, end, link)
		}
		chain = append(chain, j)
		link = j.Parent.Link
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var frames []Frame
	if mesh, err := loadLinkMesh(links[root], cfg.MeshBaseDir); err != nil {
		return nil, err
	} else if mesh != nil {
		frames = append(frames, Frame{Name: root, Type: JointFixed, Origin: spatialmath.NewZeroPose(), Mesh: mesh})
	}
	for _, j := range chain {
		frame, err := frameFromJoint(j, links[j.Child.Link], cfg.MeshBaseDir)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return NewModel(name, frames)
}

func frameFromJoint(j *urdfJoint, child *urdfLink, meshDir string) (Frame, error) {
	frame := Frame{
		Name: j.Name,
		Axis: r3.Vector{X: 1},
	}

	switch j.Type {
	case "revolute", "continuous":
		frame.Type = JointRevolute
	case "prismatic":
		frame.Type = JointPrismatic
	default:
		// Fixed and unknown joints contribute their transform but no degree of freedom,
		// matching how KDL chains treat them.
		frame.Type = JointFixed
	}

	origin, err := poseFromOrigin(j.Origin)
	if err != nil {
		return Frame{}, errors.Wrapf(ErrModelInvalid, "joint %q: %v", j.Name, err)
	}
	frame.Origin = origin

	if j.Axis != nil {
		axis, err := parseVec3(j.Axis.XYZ)
		if err != nil {
			return Frame{}, errors.Wrapf(ErrModelInvalid, "joint %q axis: %v", j.Name, err)
		}
		frame.Axis = axis
	}

	if frame.Type != JointFixed {
		if j.Limit == nil {
			return Frame{}, errors.Wrapf(ErrModelInvalid, "joint %q: actuated joint has no limits", j.Name)
		}
		frame.Limit = Limit{Min: j.Limit.Lower, Max: j.Limit.Upper}
	}

	mesh, err := loadLinkMesh(child, meshDir)
	if err != nil {
		return Frame{}, err
	}
	frame.Mesh = mesh
	return frame, nil
}

func loadLinkMesh(link *urdfLink, meshDir string) (*spatialmath.Mesh, error) {
	if link == nil || link.Collision == nil {
		return nil, nil
	}
	geom := link.Collision.Geometry
	var mesh *spatialmath.Mesh
	switch {
	case geom.Mesh != nil:
		filename := geom.Mesh.Filename
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(meshDir, filename)
		}
		loaded, err := spatialmath.NewMeshFromOBJFile(filename)
		if err != nil {
			return nil, err
		}
		mesh = loaded
	case geom.Box != nil:
		size, err := parseVec3(geom.Box.Size)
		if err != nil {
			return nil, errors.Wrapf(ErrModelInvalid, "link %q box size: %v", link.Name, err)
		}
		mesh = spatialmath.NewBoxMesh(link.Name, size, r3.Vector{})
	default:
		return nil, nil
	}
	offset, err := poseFromOrigin(link.Collision.Origin)
	if err != nil {
		return nil, errors.Wrapf(ErrModelInvalid, "link %q collision origin: %v", link.Name, err)
	}
	if offset != spatialmath.NewZeroPose() {
		mesh = mesh.Transform(offset)
	}
	return mesh, nil
}

func poseFromOrigin(origin *urdfOrigin) (spatialmath.Pose, error) {
	if origin == nil {
		return spatialmath.NewZeroPose(), nil
	}
	pose := spatialmath.NewZeroPose()
	if origin.XYZ != "" {
		xyz, err := parseVec3(origin.XYZ)
		if err != nil {
			return pose, err
		}
		pose = spatialmath.NewPoseFromPoint(xyz)
	}
	if origin.RPY != "" {
		rpy, err := parseVec3(origin.RPY)
		if err != nil {
			return pose, err
		}
		pose = spatialmath.NewPose(pose.Point(), spatialmath.NewEulerAngles(rpy.X, rpy.Y, rpy.Z))
	}
	return pose, nil
}

func parseVec3(attr string) (r3.Vector, error) {
	fields := strings.Fields(attr)
	if len(fields) != 3 {
		return r3.Vector{}, errors.Errorf("expected 3 space-separated values, got %q", attr)
	}
	var coords [3]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return r3.Vector{}, err
		}
		coords[i] = v
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
