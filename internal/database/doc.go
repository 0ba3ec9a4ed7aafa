// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup for MySQL, PostgreSQL or SQLite, migrations
//	├── records/         # Generic repository shared by every content table
//	├── dashboard/       # Aggregate counts and recent activity
//	└── audit/           # Audit event storage
//
// The schema keeps the PascalCase table and column names the website and
// admin panel already use. Rows are never removed by the API: deletes set
// IsDeleted and every read filters on it.
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(database.Config{Driver: database.DriverMySQL, Name: "Update_naatacademy"})
//
//	writers := records.NewRepository[entities.Writer](db.DB)
//	writer, err := writers.Get(7)
//
//	entries := records.NewRepository[entities.BazmeDurood](db.DB).NewestBy("inserted_date")
//	page, err := entries.ListPage(20, 0)
//
// # Adding a New Table
//
//  1. Define the entity in internal/entities with its TableName
//  2. Append it to Models() so it is migrated
//  3. Use records.NewRepository[T] or add a sub-package for custom queries
//  4. Add a compile-time check to internal/interfaces/checks.go
package database
