package render

import (
	"strings"
	"testing"

	"castsol/internal/logic/domain"
	"castsol/internal/types"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indent = "     "

func key(b byte) types.Pubkey {
	var p types.Pubkey
	for i := range p {
		p[i] = b
	}
	return p
}

func table(n int) domain.AccountTable {
	accounts := make(domain.AccountTable, 0, n)
	for i := 0; i < n; i++ {
		accounts = append(accounts, key(byte(i+1)))
	}
	return accounts
}

func inner(height int, program int, accounts ...int) domain.InnerInstruction {
	ix := domain.InnerInstruction{ProgramIDIndex: program, Accounts: accounts, Data: "3Bxs4NLhqXb3ofom"}
	if height >= 0 {
		ix.StackHeight = domain.NewStackHeight(uint32(height))
	}
	return ix
}

func newTx(accounts domain.AccountTable, ixs ...domain.TopInstruction) *domain.Tx {
	cu := uint64(84252)
	return &domain.Tx{
		Signature:    "5h6xBEauJ3PK6SWCZ1PGjBvj8vDdWG3KpwATGy1ARAXFSDwt8GFXM7W5Ncn16wmqokgpiKRLuS83KUxyZyv2sUYv",
		Status:       "Success",
		Fee:          5000,
		ComputeUnits: &cu,
		Accounts:     accounts,
		Instructions: ixs,
	}
}

func TestReport_Header(t *testing.T) {
	tx := newTx(table(1))
	tx.ComputeUnits = nil

	want := strings.Join([]string{
		"",
		"tx signature:           " + tx.Signature,
		"tx status:              Success",
		"fee:                    5000",
		"compute units consumed: 0",
		"",
		"Instructions details:",
	}, "\n")
	assert.Equal(t, want, Report(tx, Options{}))
}

func TestInstruction_NoInners(t *testing.T) {
	accounts := table(3)
	data := []byte{2, 0, 0, 0, 64, 66, 15, 0, 0, 0, 0, 0}
	ix := domain.TopInstruction{ProgramIDIndex: 2, Accounts: []int{0, 1}, Data: data}

	var b strings.Builder
	Instruction(&b, 1, &ix, nil, accounts)

	want := strings.Join([]string{
		"",
		"#1 - interact with program id: " + accounts[2].String(),
		"input accounts:",
		"[0] - " + accounts[0].String(),
		"[1] - " + accounts[1].String(),
		"instruction data: " + base58.Encode(data),
	}, "\n")
	assert.Equal(t, want, b.String())
	assert.NotContains(t, b.String(), "\n"+indent)
}

func TestInstruction_ResolvesOwnAccountIndices(t *testing.T) {
	accounts := table(4)
	ix := domain.TopInstruction{ProgramIDIndex: 0, Accounts: []int{3, 1}}

	var b strings.Builder
	Instruction(&b, 1, &ix, nil, accounts)

	assert.Contains(t, b.String(), "\n[0] - "+accounts[3].String())
	assert.Contains(t, b.String(), "\n[1] - "+accounts[1].String())
}

func TestInstruction_ZeroPaddedIndices(t *testing.T) {
	accounts := table(13)
	idx := make([]int, 12)
	for i := range idx {
		idx[i] = i
	}
	ix := domain.TopInstruction{ProgramIDIndex: 12, Accounts: idx}

	var b strings.Builder
	Instruction(&b, 1, &ix, nil, accounts)
	out := b.String()

	assert.Contains(t, out, "\n[00] - "+accounts[0].String())
	assert.Contains(t, out, "\n[09] - "+accounts[9].String())
	assert.Contains(t, out, "\n[11] - "+accounts[11].String())
	assert.NotContains(t, out, "\n[0] - ")
}

func TestInstruction_NoInputAccounts(t *testing.T) {
	accounts := table(1)
	ix := domain.TopInstruction{ProgramIDIndex: 0}

	var b strings.Builder
	Instruction(&b, 1, &ix, nil, accounts)
	assert.NotContains(t, b.String(), "input accounts:")
	assert.True(t, strings.HasSuffix(b.String(), "\ninstruction data: "))
}

func TestInstruction_ProgramOutOfRangeSkipped(t *testing.T) {
	accounts := table(2)
	ix := domain.TopInstruction{ProgramIDIndex: 2, Accounts: []int{0}, Inners: []domain.InnerInstruction{inner(2, 0)}}

	var b strings.Builder
	Instruction(&b, 1, &ix, []domain.Run{{Ordinal: 1, Seq: 1, Items: ix.Inners}}, accounts)
	assert.Empty(t, b.String())
}

func TestReport_IncreasingStackHeights(t *testing.T) {
	accounts := table(4)
	tx := newTx(accounts, domain.TopInstruction{
		ProgramIDIndex: 3,
		Inners: []domain.InnerInstruction{
			inner(1, 0),
			inner(2, 1, 0, 2),
			inner(3, 2),
		},
	})

	out := Report(tx, Options{})
	run := strings.Join([]string{
		"",
		indent + "#1.1",
		indent + "interact with: " + accounts[0].String(),
		indent + "instruction data: 3Bxs4NLhqXb3ofom",
		indent + indent + "#1.1",
		indent + indent + "interact with: " + accounts[1].String(),
		indent + indent + "input accounts:",
		indent + indent + "[0] - " + accounts[0].String(),
		indent + indent + "[1] - " + accounts[2].String(),
		indent + indent + "instruction data: 3Bxs4NLhqXb3ofom",
		indent + indent + indent + "#1.1",
		indent + indent + indent + "interact with: " + accounts[2].String(),
		indent + indent + indent + "instruction data: 3Bxs4NLhqXb3ofom",
	}, "\n")
	assert.True(t, strings.HasSuffix(out, run), out)
	assert.NotContains(t, out, "#1.2")
}

func TestReport_DepthDropStartsNewRun(t *testing.T) {
	accounts := table(3)
	tx := newTx(accounts,
		domain.TopInstruction{ProgramIDIndex: 0},
		domain.TopInstruction{
			ProgramIDIndex: 2,
			Inners:         []domain.InnerInstruction{inner(1, 0), inner(2, 1), inner(1, 0)},
		},
	)

	out := Report(tx, Options{})
	want := strings.Join([]string{
		"",
		indent + "#2.1",
		indent + "interact with: " + accounts[0].String(),
		indent + "instruction data: 3Bxs4NLhqXb3ofom",
		indent + indent + "#2.1",
		indent + indent + "interact with: " + accounts[1].String(),
		indent + indent + "instruction data: 3Bxs4NLhqXb3ofom",
		indent + "#2.2",
		indent + "interact with: " + accounts[0].String(),
		indent + "instruction data: 3Bxs4NLhqXb3ofom",
	}, "\n")
	assert.True(t, strings.HasSuffix(out, want), out)
}

func TestReport_MissingStackHeightMatchesWithout(t *testing.T) {
	accounts := table(3)
	withGap := newTx(accounts, domain.TopInstruction{
		ProgramIDIndex: 2,
		Inners:         []domain.InnerInstruction{inner(1, 0), inner(-1, 2), inner(2, 1)},
	})
	without := newTx(accounts, domain.TopInstruction{
		ProgramIDIndex: 2,
		Inners:         []domain.InnerInstruction{inner(1, 0), inner(2, 1)},
	})
	assert.Equal(t, Report(without, Options{}), Report(withGap, Options{}))
}

func TestReport_SkipsOutOfRangeProgramButKeepsOrdinals(t *testing.T) {
	accounts := table(2)
	tx := newTx(accounts,
		domain.TopInstruction{ProgramIDIndex: 9},
		domain.TopInstruction{ProgramIDIndex: 1},
	)
	out := Report(tx, Options{})
	assert.NotContains(t, out, "#1 - ")
	assert.Contains(t, out, "\n#2 - interact with program id: "+accounts[1].String())
}

func TestInstruction_InputAccountOutOfRangeSkipped(t *testing.T) {
	accounts := table(2)
	ix := domain.TopInstruction{ProgramIDIndex: 1, Accounts: []int{0, 9}}

	var b strings.Builder
	Instruction(&b, 1, &ix, nil, accounts)
	assert.Empty(t, b.String())
}

func TestReport_SkipsInstructionWithUnresolvableReferences(t *testing.T) {
	accounts := table(2)
	tx := newTx(accounts,
		domain.TopInstruction{ProgramIDIndex: 1, Accounts: []int{0, 9}},
		domain.TopInstruction{ProgramIDIndex: 1, Inners: []domain.InnerInstruction{inner(2, 7)}},
		domain.TopInstruction{ProgramIDIndex: 1, Inners: []domain.InnerInstruction{inner(2, 0, 0, 5)}},
		// 缺少 stackHeight 的 inner 指令虽然不会进入任何 Run，越界下标同样导致整条跳过
		domain.TopInstruction{ProgramIDIndex: 1, Inners: []domain.InnerInstruction{inner(2, 0), inner(-1, 8)}},
		domain.TopInstruction{ProgramIDIndex: 0, Accounts: []int{1}, Inners: []domain.InnerInstruction{inner(2, 1, 0)}},
	)

	out := Report(tx, Options{})
	for _, skipped := range []string{"#1 - ", "#2 - ", "#3 - ", "#4 - ", "#1.1", "#2.1", "#3.1", "#4.1"} {
		assert.NotContains(t, out, skipped)
	}
	assert.NotContains(t, out, "unknown")
	assert.Contains(t, out, "\n#5 - interact with program id: "+accounts[0].String())
	assert.Contains(t, out, "\n"+indent+"#5.1")
}

func TestReport_Deterministic(t *testing.T) {
	accounts := table(5)
	tx := newTx(accounts, domain.TopInstruction{
		ProgramIDIndex: 4,
		Accounts:       []int{0, 1, 2},
		Data:           []byte("hello"),
		Inners:         []domain.InnerInstruction{inner(2, 3, 0), inner(3, 2), inner(2, 3), inner(-1, 1)},
	})
	tx.Balances = domain.BalanceSnapshot{Pre: []uint64{1, 2, 3}, Post: []uint64{4, 5, 6}}

	first := Report(tx, Options{WithBalanceChanges: true})
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Report(tx, Options{WithBalanceChanges: true}))
	}
}
