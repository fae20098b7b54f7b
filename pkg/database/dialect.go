package database

import (
	"strconv"
	"strings"
)

// IsPostgres reports whether the connection name refers to Postgres.
func IsPostgres(driver string) bool {
	return driver == "postgres" || driver == "pgsql" || driver == "pq"
}

// Rebind replaces ? placeholders with $1, $2, ... for Postgres.
func Rebind(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RebindFor rebinds query only when driver is Postgres.
func RebindFor(driver, query string) string {
	if !IsPostgres(driver) {
		return query
	}
	return Rebind(query)
}

// QuoteIdent quotes an identifier for the given driver.
func QuoteIdent(driver, identifier string) string {
	if IsPostgres(driver) {
		return `"` + identifier + `"`
	}
	return "`" + identifier + "`"
}
