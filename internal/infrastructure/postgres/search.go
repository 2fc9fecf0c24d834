package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/fiqriashiddiqi/user-registry/internal/domain/entity"
	"github.com/fiqriashiddiqi/user-registry/internal/domain/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// predicate is one filter: a SQL fragment with ?-placeholders and its values.
// Both the count query and the page query are rendered from the same list, so
// their WHERE clauses cannot drift apart.
type predicate struct {
	expr string
	args []any
}

// searchFrom joins the core table with account and address so that users
// lacking either still appear, with NULLs in the joined columns.
const searchFrom = `
	FROM users u
	LEFT JOIN accounts a ON a.user_id = u.id
	LEFT JOIN addresses ad ON ad.user_id = u.id`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildPredicates translates criteria into the ordered predicate list.
// Enum values were validated by the application layer; empty means unfiltered.
func buildPredicates(c repository.SearchCriteria) []predicate {
	var preds []predicate
	if c.Query != "" {
		pat := "%" + likeEscaper.Replace(c.Query) + "%"
		preds = append(preds, predicate{
			expr: "(u.username ILIKE ? OR u.email ILIKE ? OR u.first_name ILIKE ? OR u.last_name ILIKE ?)",
			args: []any{pat, pat, pat, pat},
		})
	}
	if c.Status != "" {
		preds = append(preds, predicate{expr: "a.status = ?", args: []any{c.Status}})
	}
	if c.Role != "" {
		preds = append(preds, predicate{expr: "a.role = ?", args: []any{c.Role}})
	}
	if c.Subscription != "" {
		preds = append(preds, predicate{expr: "a.subscription = ?", args: []any{c.Subscription}})
	}
	if c.City != "" {
		preds = append(preds, predicate{expr: "ad.city = ?", args: []any{c.City}})
	}
	if c.Province != "" {
		preds = append(preds, predicate{expr: "ad.province = ?", args: []any{c.Province}})
	}
	return preds
}

// renderWhere joins the predicates with AND and numbers the placeholders
// sequentially. Returns an empty clause and nil args for an empty list.
func renderWhere(preds []predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}
	var (
		sb   strings.Builder
		args []any
		n    int
	)
	sb.WriteString(" WHERE ")
	for i, p := range preds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		expr := p.expr
		for range p.args {
			n++
			expr = strings.Replace(expr, "?", fmt.Sprintf("$%d", n), 1)
		}
		sb.WriteString(expr)
		args = append(args, p.args...)
	}
	return sb.String(), args
}

// normalizePage applies the documented pagination defaults: page 1 when
// non-positive, page size 10 by default and clamped at 100.
func normalizePage(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

// Search runs the count and page queries from one predicate list. The total
// counts distinct user ids under the filters regardless of pagination, so a
// join can never double-count a user.
func (r *UserRepository) Search(ctx context.Context, c repository.SearchCriteria) (*entity.SearchResult, error) {
	where, args := renderWhere(buildPredicates(c))

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	var total int
	countSQL := "SELECT COUNT(DISTINCT u.id)" + searchFrom + where
	if err := conn.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, mapError(err)
	}

	limit, offset := normalizePage(c.Page, c.PageSize)
	pageSQL := `SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.phone, u.birth_date, u.gender, u.created_at, u.updated_at,
		a.status, a.role, a.subscription, ad.city, ad.province` +
		searchFrom + where +
		fmt.Sprintf(" ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := conn.Query(ctx, pageSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := &entity.SearchResult{Total: total, Rows: []entity.UserView{}}
	for rows.Next() {
		var (
			v                          entity.UserView
			gender                     *string
			status, role, subscription *string
		)
		err := rows.Scan(
			&v.ID, &v.Username, &v.Email, &v.FirstName, &v.LastName, &v.Phone, &v.BirthDate, &gender, &v.CreatedAt, &v.UpdatedAt,
			&status, &role, &subscription, &v.City, &v.Province,
		)
		if err != nil {
			return nil, mapError(err)
		}
		if gender != nil {
			g := entity.Gender(*gender)
			v.Gender = &g
		}
		if status != nil {
			s := entity.AccountStatus(*status)
			v.Status = &s
		}
		if role != nil {
			ro := entity.Role(*role)
			v.Role = &ro
		}
		if subscription != nil {
			s := entity.Subscription(*subscription)
			v.Subscription = &s
		}
		result.Rows = append(result.Rows, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}
