package main

import (
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"studynotes-be/internal/model"
	"studynotes-be/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 2. Pre-Migration: extensions GORM does not manage
	log.Println("Step 1: Setting up extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 3. AutoMigrate all models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Subject{},
		&model.Tag{},
		&model.Note{},
		&model.NoteTag{},
		&model.Group{},
		&model.GroupMember{},
		&model.GroupNote{},
		&model.Attachment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Post-Migration: delete behavior lives in the database, so a user
	// or note removal cleans its whole subtree even outside the app.
	log.Println("Step 3: Adding foreign key constraints...")

	type fk struct {
		name     string
		table    string
		column   string
		refTable string
		onDelete string
	}

	fks := []fk{
		{"fk_subjects_user", "subjects", "user_id", "users", "CASCADE"},
		{"fk_tags_user", "tags", "user_id", "users", "CASCADE"},
		{"fk_notes_user", "notes", "user_id", "users", "CASCADE"},
		{"fk_notes_subject", "notes", "subject_id", "subjects", "SET NULL"},
		{"fk_note_tags_note", "note_tags", "note_id", "notes", "CASCADE"},
		{"fk_note_tags_tag", "note_tags", "tag_id", "tags", "CASCADE"},
		{"fk_groups_owner", "groups", "owner_id", "users", "CASCADE"},
		{"fk_group_members_group", "group_members", "group_id", "groups", "CASCADE"},
		{"fk_group_members_user", "group_members", "user_id", "users", "CASCADE"},
		{"fk_group_notes_group", "group_notes", "group_id", "groups", "CASCADE"},
		{"fk_group_notes_note", "group_notes", "note_id", "notes", "CASCADE"},
		{"fk_attachments_note", "attachments", "note_id", "notes", "CASCADE"},
		{"fk_attachments_user", "attachments", "user_id", "users", "CASCADE"},
	}

	for _, f := range fks {
		sql := `DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '` + f.name + `') THEN
				ALTER TABLE ` + f.table + ` ADD CONSTRAINT ` + f.name +
			` FOREIGN KEY (` + f.column + `) REFERENCES ` + f.refTable + `(id) ON DELETE ` + f.onDelete + `;
			END IF;
		END $$;`
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to add constraint %s: %v", f.name, err)
		}
	}

	color.Green("Success: Database migration completed.")
}
