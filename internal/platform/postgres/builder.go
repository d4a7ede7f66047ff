package postgres

import sq "github.com/Masterminds/squirrel"

// psql builds statements with PostgreSQL positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
