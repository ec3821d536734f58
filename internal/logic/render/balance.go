package render

import (
	"strings"

	"castsol/internal/logic/domain"
	"castsol/internal/utils"

	"github.com/olekukonko/tablewriter"
)

// BalanceChanges 追加 SOL 余额表与 Token 余额表。
func BalanceChanges(b *strings.Builder, tx *domain.Tx) {
	writeLine(b, 0, "")
	writeLine(b, 0, "Balance changes (SOL):")
	writeTable(b, []string{"Account", "Before", "After"}, lamportRows(tx.Accounts, tx.Balances))

	// 仅当 pre / post 两组 token 余额都存在时输出
	if !tx.TokenBalances.HasPre || !tx.TokenBalances.HasPost {
		return
	}
	writeLine(b, 0, "Token balance changes:")
	writeTable(b, []string{"Account", "Owner", "Mint", "Before", "After"}, tokenRows(tx.Accounts, tx.TokenBalances))
}

// lamportRows 按账户表下标输出，仅包含 pre / post 在该下标都有值的账户。
func lamportRows(accounts domain.AccountTable, snapshot domain.BalanceSnapshot) [][]string {
	rows := make([][]string, 0, accounts.Len())
	for i := 0; i < accounts.Len(); i++ {
		if i >= len(snapshot.Pre) || i >= len(snapshot.Post) {
			continue
		}
		rows = append(rows, []string{
			accounts.Name(i),
			utils.LamportsToSol(snapshot.Pre[i]),
			utils.LamportsToSol(snapshot.Post[i]),
		})
	}
	return rows
}

type tokenKey struct {
	accountIndex int
	mint         string
}

type tokenRow struct {
	key      tokenKey
	owner    string
	decimals uint8
	pre      string
	post     string
}

// tokenRows 以 (账户下标, mint) 为键关联 pre / post 余额。
// 顺序：先按 pre 的顺序，再追加只出现在 post 中的条目；缺失的一侧视为 0。
func tokenRows(accounts domain.AccountTable, snapshot domain.TokenBalanceSnapshot) [][]string {
	joined := make([]*tokenRow, 0, len(snapshot.Pre)+len(snapshot.Post))
	index := make(map[tokenKey]*tokenRow, len(snapshot.Pre)+len(snapshot.Post))

	for _, pre := range snapshot.Pre {
		key := tokenKey{accountIndex: pre.AccountIndex, mint: pre.Mint}
		if _, ok := index[key]; ok {
			continue
		}
		row := &tokenRow{key: key, owner: pre.Owner, decimals: pre.Decimals, pre: pre.Amount}
		index[key] = row
		joined = append(joined, row)
	}

	for _, post := range snapshot.Post {
		key := tokenKey{accountIndex: post.AccountIndex, mint: post.Mint}
		if row, ok := index[key]; ok {
			row.post = post.Amount
			// 账户在交易中被创建时 pre 可能没有 owner
			if row.owner == "" {
				row.owner = post.Owner
			}
			continue
		}
		row := &tokenRow{key: key, owner: post.Owner, decimals: post.Decimals, post: post.Amount}
		index[key] = row
		joined = append(joined, row)
	}

	rows := make([][]string, 0, len(joined))
	for _, row := range joined {
		// 无法解析账户的条目与越界指令一样静默跳过
		if !accounts.Contains(row.key.accountIndex) {
			continue
		}
		rows = append(rows, []string{
			accounts.Name(row.key.accountIndex),
			row.owner,
			row.key.mint,
			utils.FormatTokenAmount(row.pre, row.decimals),
			utils.FormatTokenAmount(row.post, row.decimals),
		})
	}
	return rows
}

// writeTable 使用 tablewriter 渲染表格，并按报告的行格式逐行写入
func writeTable(b *strings.Builder, header []string, rows [][]string) {
	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		writeLine(b, 0, line)
	}
}
