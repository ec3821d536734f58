package errreport

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Options 错误输出配置，由 main 在启动时显式构造
type Options struct {
	NoColor      bool   // 关闭颜色（非终端、或用户指定）
	Verbose      bool   // 额外输出 %+v 的调用栈
	BugReportURL string // panic 时提示的问题反馈地址
}

// Reporter 负责把致命错误与 panic 以可读形式写到终端
type Reporter struct {
	opts Options
	red  *color.Color
}

func New(opts Options) *Reporter {
	red := color.New(color.FgRed)
	if opts.NoColor {
		red.DisableColor()
	} else {
		red.EnableColor()
	}
	return &Reporter{opts: opts, red: red}
}

// Chain 将错误链展开为逐层的消息，每层只保留自己附加的上下文。
// 只携带调用栈、不附加消息的包装层会被跳过。
func Chain(err error) []string {
	var msgs []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		msg := e.Error()
		if next := errors.Unwrap(e); next != nil {
			msg = strings.TrimSuffix(msg, next.Error())
			msg = strings.TrimSuffix(msg, ": ")
		}
		if msg == "" {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

// Report 输出格式：
//
//	<最外层消息>
//
//	Context:
//	- Error #0: <原因>
//	- Error #1: <更底层的原因>
//
// 只有一个原因时省略编号。
func (r *Reporter) Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	msgs := Chain(err)
	if len(msgs) == 0 {
		msgs = []string{err.Error()}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.red.Sprint(msgs[0]))

	causes := msgs[1:]
	if len(causes) > 0 {
		b.WriteString("\n\nContext:")
		for n, cause := range causes {
			b.WriteString("\n")
			if len(causes) > 1 {
				fmt.Fprintf(&b, "- Error #%d: %s", n, cause)
			} else {
				fmt.Fprintf(&b, "- %s", cause)
			}
		}
	}
	if r.opts.Verbose {
		fmt.Fprintf(&b, "\n\nStack:\n%+v", err)
	}
	b.WriteString("\n")
	_, _ = io.WriteString(w, b.String())
}

// Panic 输出 panic 信息与调用栈，并提示反馈地址
func (r *Reporter) Panic(w io.Writer, v any, stack []byte) {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.red.Sprintf("The application panicked (crashed): %v", v))
	if r.opts.BugReportURL != "" {
		fmt.Fprintf(&b, "\n\nThis is a bug. Consider reporting it at %s", r.opts.BugReportURL)
	}
	if len(stack) > 0 {
		fmt.Fprintf(&b, "\n\n%s", stack)
	}
	b.WriteString("\n")
	_, _ = io.WriteString(w, b.String())
}
