package main

import (
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studynotes-be/internal/model"
	"studynotes-be/pkg/database"
)

// Seeds a demo account with a couple of subjects, tags and notes so a
// fresh environment has something to look at.
func main() {
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

	log.Println("Seeding demo data...")

	email := "demo@stud.ase.ro"

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Skip: demo user already exists (%s)", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("parola123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash password:", err)
	}

	now := time.Now()
	user := model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Demo Student",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	subjects := []model.Subject{
		{Id: uuid.New(), Name: "Databases", Description: "Relational design and SQL", Color: "#3B82F6", UserId: user.Id, CreatedAt: now, UpdatedAt: now},
		{Id: uuid.New(), Name: "Operating Systems", Description: "Processes, scheduling, memory", Color: "#EF4444", UserId: user.Id, CreatedAt: now, UpdatedAt: now},
	}

	tags := []model.Tag{
		{Id: uuid.New(), Name: "exam", UserId: user.Id, CreatedAt: now, UpdatedAt: now},
		{Id: uuid.New(), Name: "homework", UserId: user.Id, CreatedAt: now, UpdatedAt: now},
	}

	notes := []model.Note{
		{
			Id: uuid.New(), Title: "Normalization cheat sheet",
			Content:   "1NF: atomic values. 2NF: no partial dependencies. 3NF: no transitive dependencies.",
			IsPublic:  true, UserId: user.Id, SubjectId: &subjects[0].Id,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			Id: uuid.New(), Title: "Scheduling algorithms",
			Content:   "FCFS, SJF, Round Robin. Know the turnaround time formulas.",
			IsPublic:  false, UserId: user.Id, SubjectId: &subjects[1].Id,
			CreatedAt: now, UpdatedAt: now,
		},
	}

	noteTags := []model.NoteTag{
		{NoteId: notes[0].Id, TagId: tags[0].Id},
		{NoteId: notes[1].Id, TagId: tags[0].Id},
		{NoteId: notes[1].Id, TagId: tags[1].Id},
	}

	group := model.Group{
		Id: uuid.New(), Name: "DB Study Group",
		Description: "Preparing for the databases exam together",
		IsPrivate:   true, OwnerId: user.Id,
		CreatedAt:   now, UpdatedAt: now,
	}
	ownerMembership := model.GroupMember{
		Id: uuid.New(), GroupId: group.Id, UserId: user.Id,
		Role:      "admin",
		CreatedAt: now, UpdatedAt: now,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&subjects).Error; err != nil {
			return err
		}
		if err := tx.Create(&tags).Error; err != nil {
			return err
		}
		if err := tx.Create(&notes).Error; err != nil {
			return err
		}
		if err := tx.Create(&noteTags).Error; err != nil {
			return err
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return tx.Create(&ownerMembership).Error
	})
	if err != nil {
		log.Fatal("Error: Seeding failed:", err)
	}

	color.Green("Success: Seeded demo user %s (password: parola123)", email)
}
