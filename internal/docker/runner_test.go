package docker

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var namePattern = regexp.MustCompile(`^tmc-[a-zA-Z0-9_.-]+-[0-9a-f]{8}$`)

func TestContainerName(t *testing.T) {
	tests := []struct {
		exercise string
		prefix   string
	}{
		{"part01-Part01_01.Sandbox", "tmc-part01-Part01_01.Sandbox-"},
		{"osa 1/tehtävä", "tmc-osa_1_teht__v__-"},
		{"", "tmc-exercise-"},
	}
	for _, tt := range tests {
		t.Run(tt.exercise, func(t *testing.T) {
			name := ContainerName(tt.exercise)
			assert.Regexp(t, namePattern, name)
			assert.Equal(t, tt.prefix, name[:len(tt.prefix)])
		})
	}
	assert.NotEqual(t, ContainerName("a"), ContainerName("a"))
}

func TestRunContainer(t *testing.T) {
	if os.Getenv("TMC_DOCKER_TESTS") == "" {
		t.Skip("set TMC_DOCKER_TESTS=1 to run Docker tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	workDir := t.TempDir()
	res, err := RunContainer(ctx, ContainerName("hello"), &RunOpts{
		Image:   "alpine:latest",
		Command: []string{"sh", "-c", "echo hello > /workspace/output.txt; echo done"},
		WorkDir: workDir,
		Env:     map[string]string{"EXERCISE": "hello"},
		Timeout: 30 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.False(t, res.TimedOut)
	assert.Contains(t, string(res.Output), "done")

	content, err := os.ReadFile(filepath.Join(workDir, "output.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(content))
}

func TestRunContainerTimeout(t *testing.T) {
	if os.Getenv("TMC_DOCKER_TESTS") == "" {
		t.Skip("set TMC_DOCKER_TESTS=1 to run Docker tests")
	}
	res, err := RunContainer(context.Background(), ContainerName("sleep"), &RunOpts{
		Image:   "alpine:latest",
		Command: []string{"sleep", "60"},
		WorkDir: t.TempDir(),
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.Equal(t, 124, res.ExitCode)
}
