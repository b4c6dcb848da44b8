// Package workdir locates the course a command runs in and decides which of its
// exercises the command applies to.
package workdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/signalnine/tmc/internal/config"
)

var (
	ErrNotCourseDir    = errors.New("not a course directory")
	ErrUnknownExercise = errors.New("not a valid exercise")
	ErrNoExercises     = errors.New("no exercises found")
)

type Exercise struct {
	Name string
	Dir  string
	Info config.Exercise
}

type WorkDir struct {
	Root   string
	Course *config.Course
	cwd    string
}

// Find walks up from start to the nearest directory containing the course file.
func Find(start string) (*WorkDir, error) {
	cwd, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", start, err)
	}
	dir := cwd
	for {
		path := filepath.Join(dir, config.CourseFile)
		if _, err := os.Stat(path); err == nil {
			course, err := config.LoadCourse(path)
			if err != nil {
				return nil, err
			}
			return &WorkDir{Root: dir, Course: course, cwd: cwd}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNotCourseDir
		}
		dir = parent
	}
}

// Resolve returns the exercises named by args. With no args it returns the
// exercise containing the working directory, or every exercise present on disk
// when the working directory is not inside one.
func (w *WorkDir) Resolve(args []string) ([]Exercise, error) {
	if len(args) > 0 {
		var out []Exercise
		for _, name := range args {
			ex, ok := w.lookup(filepath.Base(filepath.Clean(name)))
			if !ok {
				return nil, fmt.Errorf("'%s' is %w", name, ErrUnknownExercise)
			}
			out = append(out, ex)
		}
		return out, nil
	}

	if name, ok := w.currentExercise(); ok {
		if ex, ok := w.lookup(name); ok {
			return []Exercise{ex}, nil
		}
	}

	var out []Exercise
	for _, e := range w.Course.Exercises {
		if ex, ok := w.lookup(e.Name); ok {
			out = append(out, ex)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoExercises
	}
	return out, nil
}

func (w *WorkDir) lookup(name string) (Exercise, bool) {
	info, ok := w.Course.Exercise(name)
	if !ok {
		return Exercise{}, false
	}
	dir := filepath.Join(w.Root, name)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return Exercise{}, false
	}
	return Exercise{Name: name, Dir: dir, Info: *info}, true
}

// currentExercise is the first path element of cwd below the course root.
func (w *WorkDir) currentExercise() (string, bool) {
	rel, err := filepath.Rel(w.Root, w.cwd)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return strings.Split(rel, string(filepath.Separator))[0], true
}
