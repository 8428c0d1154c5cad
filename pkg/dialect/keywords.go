package dialect

import "github.com/leapstack-labs/sqlkit/pkg/token"

// baseKeywords is shared by every dialect. IF is intentionally absent: it is
// usually a function name (IF(a, b, c)) and the formatter promotes a bare IF
// to a keyword itself.
var baseKeywords = map[string]token.TokenType{
	// DML
	"SELECT":  token.KeywordDML,
	"INSERT":  token.KeywordDML,
	"UPDATE":  token.KeywordDML,
	"DELETE":  token.KeywordDML,
	"MERGE":   token.KeywordDML,
	"REPLACE": token.KeywordDML,
	"UPSERT":  token.KeywordDML,

	// DDL
	"CREATE":   token.KeywordDDL,
	"DROP":     token.KeywordDDL,
	"ALTER":    token.KeywordDDL,
	"TRUNCATE": token.KeywordDDL,

	"ADD":               token.Keyword,
	"ALL":               token.Keyword,
	"AND":               token.Keyword,
	"ANY":               token.Keyword,
	"AS":                token.Keyword,
	"ASC":               token.Keyword,
	"BEGIN":             token.Keyword,
	"BETWEEN":           token.Keyword,
	"BY":                token.Keyword,
	"CALL":              token.Keyword,
	"CASCADE":           token.Keyword,
	"CASE":              token.Keyword,
	"CAST":              token.Keyword,
	"CHECK":             token.Keyword,
	"CLOSE":             token.Keyword,
	"COLLATE":           token.Keyword,
	"COLUMN":            token.Keyword,
	"COMMIT":            token.Keyword,
	"CONSTRAINT":        token.Keyword,
	"CONTINUE":          token.Keyword,
	"CROSS":             token.Keyword,
	"CURRENT":           token.Keyword,
	"CURRENT_DATE":      token.Keyword,
	"CURRENT_TIME":      token.Keyword,
	"CURRENT_TIMESTAMP": token.Keyword,
	"CURSOR":            token.Keyword,
	"DATABASE":          token.Keyword,
	"DECLARE":           token.Keyword,
	"DEFAULT":           token.Keyword,
	"DESC":              token.Keyword,
	"DISTINCT":          token.Keyword,
	"DO":                token.Keyword,
	"EACH":              token.Keyword,
	"ELSE":              token.Keyword,
	"ELSIF":             token.Keyword,
	"END":               token.Keyword,
	"ESCAPE":            token.Keyword,
	"EXCEPT":            token.Keyword,
	"EXCEPTION":         token.Keyword,
	"EXECUTE":           token.Keyword,
	"EXISTS":            token.Keyword,
	"EXIT":              token.Keyword,
	"EXPLAIN":           token.Keyword,
	"FALSE":             token.Keyword,
	"FETCH":             token.Keyword,
	"FILTER":            token.Keyword,
	"FIRST":             token.Keyword,
	"FOLLOWING":         token.Keyword,
	"FOR":               token.Keyword,
	"FOREIGN":           token.Keyword,
	"FROM":              token.Keyword,
	"FULL":              token.Keyword,
	"FUNCTION":          token.Keyword,
	"GRANT":             token.Keyword,
	"GROUP":             token.Keyword,
	"HAVING":            token.Keyword,
	"IN":                token.Keyword,
	"INDEX":             token.Keyword,
	"INNER":             token.Keyword,
	"INTERSECT":         token.Keyword,
	"INTO":              token.Keyword,
	"IS":                token.Keyword,
	"JOIN":              token.Keyword,
	"KEY":               token.Keyword,
	"LANGUAGE":          token.Keyword,
	"LAST":              token.Keyword,
	"LATERAL":           token.Keyword,
	"LEFT":              token.Keyword,
	"LIKE":              token.Keyword,
	"LIMIT":             token.Keyword,
	"LOOP":              token.Keyword,
	"NATURAL":           token.Keyword,
	"NOT":               token.Keyword,
	"NULL":              token.Keyword,
	"NULLS":             token.Keyword,
	"OF":                token.Keyword,
	"OFFSET":            token.Keyword,
	"ON":                token.Keyword,
	"OPEN":              token.Keyword,
	"OR":                token.Keyword,
	"ORDER":             token.Keyword,
	"OUTER":             token.Keyword,
	"OVER":              token.Keyword,
	"PARTITION":         token.Keyword,
	"PRECEDING":         token.Keyword,
	"PRIMARY":           token.Keyword,
	"PROCEDURE":         token.Keyword,
	"RAISE":             token.Keyword,
	"RANGE":             token.Keyword,
	"RECURSIVE":         token.Keyword,
	"REFERENCES":        token.Keyword,
	"RETURN":            token.Keyword,
	"RETURNS":           token.Keyword,
	"REVOKE":            token.Keyword,
	"RIGHT":             token.Keyword,
	"ROLLBACK":          token.Keyword,
	"ROW":               token.Keyword,
	"ROWS":              token.Keyword,
	"SAVEPOINT":         token.Keyword,
	"SCHEMA":            token.Keyword,
	"SEQUENCE":          token.Keyword,
	"SET":               token.Keyword,
	"SOME":              token.Keyword,
	"TABLE":             token.Keyword,
	"TEMPORARY":         token.Keyword,
	"THEN":              token.Keyword,
	"TO":                token.Keyword,
	"TRANSACTION":       token.Keyword,
	"TRIGGER":           token.Keyword,
	"TRUE":              token.Keyword,
	"UNBOUNDED":         token.Keyword,
	"UNION":             token.Keyword,
	"UNIQUE":            token.Keyword,
	"USING":             token.Keyword,
	"VALUES":            token.Keyword,
	"VIEW":              token.Keyword,
	"WHEN":              token.Keyword,
	"WHERE":             token.Keyword,
	"WHILE":             token.Keyword,
	"WINDOW":            token.Keyword,
	"WITH":              token.Keyword,
}

// baseMultiWordKeywords are lexed as one keyword token. The END variants keep
// block closers of IF/LOOP/CASE from being read as a bare END.
var baseMultiWordKeywords = []string{
	"END IF",
	"END LOOP",
	"END CASE",
	"END WHILE",
	"ORDER BY",
	"GROUP BY",
	"PARTITION BY",
	"UNION ALL",
	"NULLS FIRST",
	"NULLS LAST",
}
