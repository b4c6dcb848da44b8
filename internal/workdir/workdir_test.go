package workdir_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/tmc/internal/workdir"
)

const courseYAML = `course: demo
exercises:
  - name: ex1
  - name: ex2
  - name: ex3
`

// newCourse creates a course with ex1 and ex2 on disk; ex3 is listed but absent.
func newCourse(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tmc.yaml"), []byte(courseYAML), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ex1", "src", "main"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ex2"), 0o755))
	return root
}

func names(exs []workdir.Exercise) []string {
	var out []string
	for _, e := range exs {
		out = append(out, e.Name)
	}
	return out
}

func TestFindFromNestedDir(t *testing.T) {
	root := newCourse(t)
	w, err := workdir.Find(filepath.Join(root, "ex1", "src", "main"))
	require.NoError(t, err)
	assert.Equal(t, root, w.Root)
	assert.Equal(t, "demo", w.Course.Name)
}

func TestFindNotCourse(t *testing.T) {
	_, err := workdir.Find(t.TempDir())
	assert.ErrorIs(t, err, workdir.ErrNotCourseDir)
}

func TestResolve(t *testing.T) {
	root := newCourse(t)

	tests := []struct {
		name  string
		start string
		args  []string
		want  []string
		err   error
	}{
		{"course root takes all present", root, nil, []string{"ex1", "ex2"}, nil},
		{"inside exercise", filepath.Join(root, "ex1", "src"), nil, []string{"ex1"}, nil},
		{"explicit names", root, []string{"ex2", "ex1/"}, []string{"ex2", "ex1"}, nil},
		{"unknown name", root, []string{"nope"}, nil, workdir.ErrUnknownExercise},
		{"listed but missing on disk", root, []string{"ex3"}, nil, workdir.ErrUnknownExercise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := workdir.Find(tt.start)
			require.NoError(t, err)
			got, err := w.Resolve(tt.args)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestResolveUnknownMessage(t *testing.T) {
	w, err := workdir.Find(newCourse(t))
	require.NoError(t, err)
	_, err = w.Resolve([]string{"bogus"})
	assert.EqualError(t, err, "'bogus' is not a valid exercise")
}

func TestResolveNoExercises(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tmc.yaml"), []byte(courseYAML), 0o644))
	w, err := workdir.Find(root)
	require.NoError(t, err)
	_, err = w.Resolve(nil)
	assert.ErrorIs(t, err, workdir.ErrNoExercises)
}
