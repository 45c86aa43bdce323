// Package query composes a base relation, its left-outer relations and its
// derived columns into a single SQL statement, and paginates over it.
//
// Every join is expressed either as a LEFT JOIN of at most one related row or
// as a correlated scalar subquery, so a base row never disappears because a
// related collection is empty.
package query

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column 输出列：SQL 表达式 + 别名
type Column struct {
	SQL  string
	Vars []any
	As   string
}

// Col 构造输出列
func Col(sql, as string, vars ...any) Column {
	return Column{SQL: sql, Vars: vars, As: as}
}

// Subquery 描述一组相关行：FROM table AS alias WHERE cond（cond 可引用外层别名）
type Subquery struct {
	Table string
	Alias string
	Where string
	Vars  []any
}

func (s Subquery) from() string { return s.Table + " AS " + s.Alias }

// Relation 左外连接最多一条相关行（例如 owner）
type Relation struct {
	Table   string
	Alias   string
	On      string
	Vars    []any
	Columns []Column
}

// PickOne 扇出后取一：在 Related 中按 OrderBy 取第一条并作为 Alias 左连接
type PickOne struct {
	Related Subquery
	OrderBy string
	Alias   string
	Columns []Column
}

type fragment struct {
	sql  string
	vars []any
}

// Query 可组合查询；零值不可用，使用 From 构造
type Query struct {
	db      *gorm.DB
	table   string
	alias   string
	columns []Column
	joins   []fragment
	wheres  []fragment
	orders  []string
}

// From 以 table AS alias 为基础关系
func From(db *gorm.DB, table, alias string) *Query {
	return &Query{db: db, table: table, alias: alias}
}

// Alias 返回基础关系别名
func (q *Query) Alias() string { return q.alias }

// Select 选取基础关系的原始列，输出别名与列名相同
func (q *Query) Select(cols ...string) *Query {
	for _, c := range cols {
		q.columns = append(q.columns, Column{SQL: q.alias + "." + c, As: c})
	}
	return q
}

// Derive 追加任意计算列
func (q *Query) Derive(cols ...Column) *Query {
	q.columns = append(q.columns, cols...)
	return q
}

// Where 追加过滤条件（AND）
func (q *Query) Where(sql string, vars ...any) *Query {
	q.wheres = append(q.wheres, fragment{sql: sql, vars: vars})
	return q
}

// Search 对给定列做大小写不敏感的子串匹配；空串不加过滤
func (q *Query) Search(text string, cols ...string) *Query {
	text = strings.TrimSpace(text)
	if text == "" || len(cols) == 0 {
		return q
	}
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	parts := make([]string, len(cols))
	vars := make([]any, len(cols))
	for i, c := range cols {
		parts[i] = "LOWER(" + c + `) LIKE ? ESCAPE '\'`
		vars[i] = pattern
	}
	return q.Where("("+strings.Join(parts, " OR ")+")", vars...)
}

// LeftJoin 左外连接一条相关行
func (q *Query) LeftJoin(r Relation) *Query {
	q.joins = append(q.joins, fragment{
		sql:  "LEFT JOIN " + r.Table + " AS " + r.Alias + " ON " + r.On,
		vars: r.Vars,
	})
	q.columns = append(q.columns, r.Columns...)
	return q
}

// InnerJoin 内连接；仅用于基础关系本身是边、且目标被过滤时
func (q *Query) InnerJoin(r Relation) *Query {
	q.joins = append(q.joins, fragment{
		sql:  "JOIN " + r.Table + " AS " + r.Alias + " ON " + r.On,
		vars: r.Vars,
	})
	q.columns = append(q.columns, r.Columns...)
	return q
}

// Count 相关行计数，无相关行时为 0
func (q *Query) Count(as string, sub Subquery) *Query {
	return q.Derive(Column{
		SQL:  "COALESCE((SELECT COUNT(*) FROM " + sub.from() + " WHERE " + sub.Where + "), 0)",
		Vars: sub.Vars,
		As:   as,
	})
}

// Sum 相关行求和，无相关行时为 0
func (q *Query) Sum(as, expr string, sub Subquery) *Query {
	return q.Derive(Column{
		SQL:  "CAST(COALESCE((SELECT SUM(" + expr + ") FROM " + sub.from() + " WHERE " + sub.Where + "), 0) AS BIGINT)",
		Vars: sub.Vars,
		As:   as,
	})
}

// Latest 扇出后取一（例如频道最新发布的视频），无匹配时各列为 NULL
func (q *Query) Latest(p PickOne) *Query {
	pick := "SELECT " + p.Related.Alias + ".id FROM " + p.Related.from() +
		" WHERE " + p.Related.Where + " ORDER BY " + p.OrderBy + " LIMIT 1"
	q.joins = append(q.joins, fragment{
		sql:  "LEFT JOIN " + p.Related.Table + " AS " + p.Alias + " ON " + p.Alias + ".id = (" + pick + ")",
		vars: p.Related.Vars,
	})
	q.columns = append(q.columns, p.Columns...)
	return q
}

// OrderBy 按任意输出别名或表达式排序；Build 时总会追加 created_at、id 倒序作为稳定次序
func (q *Query) OrderBy(expr string, desc bool) *Query {
	dir := " ASC"
	if desc {
		dir = " DESC"
	}
	q.orders = append(q.orders, expr+dir)
	return q
}

// Build 生成单条语句；每次调用返回新的 *gorm.DB
func (q *Query) Build(ctx context.Context) *gorm.DB {
	tx := q.db.WithContext(ctx).Table(q.table + " AS " + q.alias)

	sel, vars := q.selectClause()
	tx = tx.Clauses(clause.Select{Expression: clause.Expr{SQL: sel, Vars: vars}})

	for _, j := range q.joins {
		tx = tx.Joins(j.sql, j.vars...)
	}
	for _, w := range q.wheres {
		tx = tx.Where(w.sql, w.vars...)
	}
	for _, o := range q.orders {
		tx = tx.Order(o)
	}
	return tx.Order(q.alias + ".created_at DESC").Order(q.alias + ".id DESC")
}

func (q *Query) selectClause() (string, []any) {
	if len(q.columns) == 0 {
		return q.alias + ".*", nil
	}
	parts := make([]string, len(q.columns))
	var vars []any
	for i, c := range q.columns {
		parts[i] = c.SQL + " AS " + c.As
		vars = append(vars, c.Vars...)
	}
	return strings.Join(parts, ", "), vars
}

// Find 执行并扫描全部结果
func (q *Query) Find(ctx context.Context, dest any) error {
	return q.Build(ctx).Scan(dest).Error
}

// First 取第一行；dest 须为切片指针以外的结构体指针，无结果时 found=false
func (q *Query) First(ctx context.Context, dest any) (bool, error) {
	res := q.Build(ctx).Limit(1).Scan(dest)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
