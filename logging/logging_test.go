package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.viam.com/test"
)

func TestLoggerOutput(t *testing.T) {
	var sb strings.Builder
	logger := newWithAppenders("planner", zap.NewAtomicLevelAt(DEBUG), NewWriterAppender(&sb))

	logger.Infof("connected after %d iterations", 12)
	out := sb.String()
	test.That(t, out, test.ShouldContainSubstring, "INFO")
	test.That(t, out, test.ShouldContainSubstring, "planner")
	test.That(t, out, test.ShouldContainSubstring, "connected after 12 iterations")

	sb.Reset()
	logger.Debugw("bur", "spikes", 7)
	test.That(t, sb.String(), test.ShouldContainSubstring, "spikes")
}

func TestLoggerLevel(t *testing.T) {
	var sb strings.Builder
	logger := newWithAppenders("planner", zap.NewAtomicLevelAt(INFO), NewWriterAppender(&sb))

	logger.Debug("hidden")
	test.That(t, sb.String(), test.ShouldEqual, "")

	logger.SetLevel(DEBUG)
	logger.Debug("visible")
	test.That(t, sb.String(), test.ShouldContainSubstring, "visible")
}

func TestSublogger(t *testing.T) {
	var sb strings.Builder
	logger := newWithAppenders("rbt", zap.NewAtomicLevelAt(INFO), NewWriterAppender(&sb))

	logger.Sublogger("connect").Info("hi")
	test.That(t, sb.String(), test.ShouldContainSubstring, "rbt.connect")
}
