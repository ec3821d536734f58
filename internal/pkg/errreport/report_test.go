package errreport

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	root := errors.New("connection refused")
	err := errors.WithMessage(errors.Wrap(root, "getTransaction request failed"), `failed to get tx: "abc"`)

	assert.Equal(t, []string{
		`failed to get tx: "abc"`,
		"getTransaction request failed",
		"connection refused",
	}, Chain(err))
}

func TestChain_StdlibWrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New("inner"))
	assert.Equal(t, []string{"outer", "inner"}, Chain(err))
}

func TestReport_SingleCause(t *testing.T) {
	var buf bytes.Buffer
	err := errors.WithMessage(errors.New("transaction not found"), `failed to get tx: "abc"`)
	New(Options{NoColor: true}).Report(&buf, err)

	assert.Equal(t, "\nfailed to get tx: \"abc\"\n\nContext:\n- transaction not found\n", buf.String())
}

func TestReport_MultipleCauses(t *testing.T) {
	var buf bytes.Buffer
	err := errors.WithMessage(errors.WithMessage(errors.New("dial tcp: refused"), "getTransaction request failed"), "failed to get tx")
	New(Options{NoColor: true}).Report(&buf, err)

	assert.Equal(t, "\nfailed to get tx\n\nContext:\n- Error #0: getTransaction request failed\n- Error #1: dial tcp: refused\n", buf.String())
}

func TestReport_NoCause(t *testing.T) {
	var buf bytes.Buffer
	New(Options{NoColor: true}).Report(&buf, errors.New("rpc url is required"))
	assert.Equal(t, "\nrpc url is required\n", buf.String())

	buf.Reset()
	New(Options{NoColor: true}).Report(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestReport_Color(t *testing.T) {
	var buf bytes.Buffer
	New(Options{}).Report(&buf, errors.New("boom"))
	assert.Contains(t, buf.String(), "\x1b[31mboom\x1b[0m")
}

func TestPanic(t *testing.T) {
	var buf bytes.Buffer
	New(Options{NoColor: true, BugReportURL: "https://example.com/issues"}).Panic(&buf, "index out of range", []byte("goroutine 1 [running]:"))

	out := buf.String()
	assert.Contains(t, out, "The application panicked (crashed): index out of range")
	assert.Contains(t, out, "This is a bug. Consider reporting it at https://example.com/issues")
	assert.Contains(t, out, "goroutine 1 [running]:")
}
