package render

import (
	"fmt"
	"strings"

	"castsol/internal/consts"
	"castsol/internal/logic/domain"
	"castsol/internal/logic/segmenter"
	"castsol/internal/utils"

	"github.com/mr-tron/base58"
)

// Options 控制报告中的可选部分
type Options struct {
	WithBalanceChanges bool // 是否追加 SOL / Token 余额变化表
}

// Report 将规范化后的交易渲染为文本报告。
// 纯函数：相同输入总是得到逐字节相同的输出。返回值不含末尾换行。
func Report(tx *domain.Tx, opts Options) string {
	var b strings.Builder
	writeHeader(&b, tx)

	writeLine(&b, 0, "")
	writeLine(&b, 0, "Instructions details:")
	for i := range tx.Instructions {
		ordinal := i + 1
		ix := &tx.Instructions[i]
		Instruction(&b, ordinal, ix, segmenter.Segment(ordinal, ix.Inners), tx.Accounts)
	}

	if opts.WithBalanceChanges {
		BalanceChanges(&b, tx)
	}
	return b.String()
}

func writeHeader(b *strings.Builder, tx *domain.Tx) {
	writeField(b, "tx signature:", tx.Signature)
	writeField(b, "tx status:", tx.Status)
	writeField(b, "fee:", tx.Fee)
	writeField(b, "compute units consumed:", tx.ComputeUnitsOrZero())
}

func writeField(b *strings.Builder, name string, value any) {
	writeLine(b, 0, fmt.Sprintf("%-24s%v", name, value))
}

// Instruction 渲染一条主指令及其分段后的 inner 指令。
// 主指令或任一 inner 指令引用了越界的程序 / 账户下标时，整条主指令不输出任何内容。
func Instruction(b *strings.Builder, ordinal int, ix *domain.TopInstruction, runs []domain.Run, accounts domain.AccountTable) {
	if !resolvable(ix, runs, accounts) {
		return
	}

	writeLine(b, 0, fmt.Sprintf("#%d - interact with program id: %s", ordinal, accounts.Name(ix.ProgramIDIndex)))

	if n := len(ix.Accounts); n > 0 {
		// 序号按账户数量的位数补零，例如 12 个账户为 00 ~ 11
		width := utils.DigitCount(n)
		writeLine(b, 0, "input accounts:")
		for i, idx := range ix.Accounts {
			writeLine(b, 0, fmt.Sprintf("[%0*d] - %s", width, i, accounts.Name(idx)))
		}
	}
	writeLine(b, 0, "instruction data: "+base58.Encode(ix.Data))

	for _, run := range runs {
		writeRun(b, run, accounts)
	}
}

// resolvable 校验主指令、其 inner 指令以及各 Run 中引用的下标全部在账户表范围内
func resolvable(ix *domain.TopInstruction, runs []domain.Run, accounts domain.AccountTable) bool {
	if !accounts.Contains(ix.ProgramIDIndex) || !accounts.ContainsAll(ix.Accounts) {
		return false
	}
	for _, inner := range ix.Inners {
		if !accounts.Contains(inner.ProgramIDIndex) || !accounts.ContainsAll(inner.Accounts) {
			return false
		}
	}
	for _, run := range runs {
		for _, inner := range run.Items {
			if !accounts.Contains(inner.ProgramIDIndex) || !accounts.ContainsAll(inner.Accounts) {
				return false
			}
		}
	}
	return true
}

// writeRun 渲染一个 Run：第一条指令缩进 1 级，之后每条比上一条多缩进 1 级。
func writeRun(b *strings.Builder, run domain.Run, accounts domain.AccountTable) {
	label := run.Label()
	for i, ix := range run.Items {
		level := i + 1
		writeLine(b, level, label)
		writeLine(b, level, "interact with: "+accounts.Name(ix.ProgramIDIndex))
		if len(ix.Accounts) > 0 {
			writeLine(b, level, "input accounts:")
			for j, idx := range ix.Accounts {
				writeLine(b, level, fmt.Sprintf("[%d] - %s", j, accounts.Name(idx)))
			}
		}
		writeLine(b, level, "instruction data: "+ix.Data)
	}
}

// writeLine 写入换行、level 级缩进和内容
func writeLine(b *strings.Builder, level int, content string) {
	b.WriteByte('\n')
	for i := 0; i < level; i++ {
		b.WriteString(consts.IndentUnit)
	}
	b.WriteString(content)
}
