// Package engine executes single SQL statements against an in-memory
// relational store.
//
// An Engine owns its Store. It is not safe for concurrent use; callers that
// share an engine across goroutines must serialize access.
//
//	eng := engine.New(engine.Config{Logger: logger})
//	eng.Execute("CREATE TABLE users (id INT PRIMARY KEY, name TEXT)")
//	eng.Execute("INSERT INTO users (id, name) VALUES (1, 'Ada')")
//	res := eng.Execute("SELECT * FROM users")
//
// Every statement is validated first; validation errors fail the
// execution. WHERE clauses are not evaluated: DELETE with a WHERE clause
// and UPDATE report zero affected rows and leave the store unchanged.
package engine
