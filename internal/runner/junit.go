package runner

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/signalnine/tmc/internal/result"
)

type junitSuites struct {
	Suites []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Cases  []junitCase  `xml:"testcase"`
	Suites []junitSuite `xml:"testsuite"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *junitProblem `xml:"failure"`
	Error     *junitProblem `xml:"error"`
	Skipped   *struct{}     `xml:"skipped"`
}

type junitProblem struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// ParseResults decodes a results file written by an exercise's test command.
// Files ending in .xml are JUnit reports, anything else is a JSON array of
// test outcomes.
func ParseResults(path string, data []byte) ([]result.TestOutcome, error) {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return ParseJUnit(data)
	}
	var tests []result.TestOutcome
	if err := json.Unmarshal(data, &tests); err != nil {
		return nil, fmt.Errorf("parsing test results: %w", err)
	}
	return tests, nil
}

// ParseJUnit reads a JUnit XML report with either a <testsuites> or a
// <testsuite> root. Skipped cases are left out.
func ParseJUnit(data []byte) ([]result.TestOutcome, error) {
	data = bytes.TrimSpace(data)
	var suites []junitSuite
	if bytes.Contains(data, []byte("<testsuites")) {
		var root junitSuites
		if err := xml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parsing junit report: %w", err)
		}
		suites = root.Suites
	} else {
		var single junitSuite
		if err := xml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parsing junit report: %w", err)
		}
		suites = []junitSuite{single}
	}

	var tests []result.TestOutcome
	var walk func([]junitSuite)
	walk = func(ss []junitSuite) {
		for _, s := range ss {
			for _, c := range s.Cases {
				if c.Skipped != nil {
					continue
				}
				tests = append(tests, caseOutcome(c))
			}
			walk(s.Suites)
		}
	}
	walk(suites)
	return tests, nil
}

func caseOutcome(c junitCase) result.TestOutcome {
	name := c.Name
	if c.Classname != "" {
		name = c.Classname + " " + c.Name
	}
	problem := c.Failure
	if problem == nil {
		problem = c.Error
	}
	if problem == nil {
		return result.TestOutcome{Name: name, Successful: true}
	}
	msg := problem.Message
	if msg == "" {
		msg = problem.Type
	}
	return result.TestOutcome{
		Name:           name,
		Message:        msg,
		ExceptionTrace: splitLines(problem.Body),
	}
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
