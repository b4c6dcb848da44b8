package result

// TestOutcome is the result of a single test case.
type TestOutcome struct {
	Name            string   `json:"name"`
	Successful      bool     `json:"successful"`
	Message         string   `json:"message,omitempty"`
	DetailedMessage []string `json:"detailed_message,omitempty"`
	ExceptionTrace  []string `json:"exception,omitempty"`
}

// SubmissionStatus is the server's coarse verdict for a submission.
type SubmissionStatus string

const (
	SubmissionOK         SubmissionStatus = "OK"
	SubmissionFail       SubmissionStatus = "FAIL"
	SubmissionError      SubmissionStatus = "ERROR"
	SubmissionProcessing SubmissionStatus = "PROCESSING"
)

// TestResultStatus summarizes how many of a submission's tests failed.
type TestResultStatus string

const (
	NoneFailed TestResultStatus = "NONE_FAILED"
	AllFailed  TestResultStatus = "ALL_FAILED"
	SomeFailed TestResultStatus = "SOME_FAILED"
)

type SubmissionOutcome struct {
	TestCases        []TestOutcome    `json:"test_cases"`
	Status           SubmissionStatus `json:"status"`
	TestResultStatus TestResultStatus `json:"test_result_status,omitempty"`
	ErrorText        string           `json:"error,omitempty"`
	ValgrindLog      string           `json:"valgrind,omitempty"`
	Points           []string         `json:"points,omitempty"`
	SolutionURL      string           `json:"solution_url,omitempty"`
}

// ComputeTestResultStatus derives the test result status from the test cases.
// It returns the empty status when there are no tests.
func ComputeTestResultStatus(tests []TestOutcome) TestResultStatus {
	passed := PassedCount(tests)
	switch {
	case len(tests) == 0:
		return ""
	case passed == len(tests):
		return NoneFailed
	case passed == 0:
		return AllFailed
	default:
		return SomeFailed
	}
}

// PassedCount returns the number of successful tests.
func PassedCount(tests []TestOutcome) int {
	n := 0
	for _, t := range tests {
		if t.Successful {
			n++
		}
	}
	return n
}

// RunStatus is the outcome of a local compile and test run.
type RunStatus string

const (
	RunPassed             RunStatus = "PASSED"
	RunTestsFailed        RunStatus = "TESTS_FAILED"
	RunCompileFailed      RunStatus = "COMPILE_FAILED"
	RunTestrunInterrupted RunStatus = "TESTRUN_INTERRUPTED"
	RunGenericError       RunStatus = "GENERIC_ERROR"
)

// Log kinds attached to a RunOutcome.
const (
	LogStdout         = "stdout"
	LogStderr         = "stderr"
	LogCompilerOutput = "compiler_output"
	LogGenericError   = "generic_error_message"
)

type RunOutcome struct {
	TestResults []TestOutcome     `json:"test_results"`
	Status      RunStatus         `json:"status"`
	Logs        map[string][]byte `json:"logs,omitempty"`
}
