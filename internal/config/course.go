package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CourseFile is the name of the course info file at a course root.
const CourseFile = ".tmc.yaml"

type Course struct {
	Name      string     `yaml:"course"`
	Exercises []Exercise `yaml:"exercises"`
}

// Exercise may override the test image and command from Tests.
type Exercise struct {
	Name    string `yaml:"name"`
	Image   string `yaml:"image"`
	Command string `yaml:"command"`
}

func LoadCourse(path string) (*Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading course info %s: %w", path, err)
	}
	var c Course
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing course info %s: %w", path, err)
	}
	if err := validateCourse(&c); err != nil {
		return nil, fmt.Errorf("invalid course info %s: %w", path, err)
	}
	return &c, nil
}

func (c *Course) Exercise(name string) (*Exercise, bool) {
	for i := range c.Exercises {
		if c.Exercises[i].Name == name {
			return &c.Exercises[i], true
		}
	}
	return nil, false
}

func validateCourse(c *Course) error {
	if c.Name == "" {
		return fmt.Errorf("course name is required")
	}
	seen := make(map[string]bool)
	for i, e := range c.Exercises {
		if e.Name == "" {
			return fmt.Errorf("exercise %d: name is required", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("exercise %q listed twice", e.Name)
		}
		seen[e.Name] = true
	}
	return nil
}
