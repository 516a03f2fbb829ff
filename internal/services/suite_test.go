package services

import (
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/models"
)

// openTestDB creates an in-memory SQLite database with the full schema.
func openTestDB(s *suite.Suite) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.TaskStatus{},
		&models.Tag{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.TaskTag{},
		&models.AuditLog{},
	)
	s.Require().NoError(err)

	return db
}

func closeTestDB(s *suite.Suite, db *gorm.DB) {
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func createTestUser(s *suite.Suite, db *gorm.DB, username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	s.Require().NoError(db.Create(user).Error)
	return user
}

func createTestProject(s *suite.Suite, db *gorm.DB, name string, creatorID uint64) *models.Project {
	project := &models.Project{
		Name:      name,
		CreatorID: creatorID,
	}
	s.Require().NoError(db.Create(project).Error)
	s.Require().NoError(db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: creatorID}).Error)
	return project
}

func createTestStatus(s *suite.Suite, db *gorm.DB, name string) *models.TaskStatus {
	status := &models.TaskStatus{Name: name}
	s.Require().NoError(db.Create(status).Error)
	return status
}

func createTestTag(s *suite.Suite, db *gorm.DB, name string) *models.Tag {
	tag := &models.Tag{Name: name, Color: "#336699"}
	s.Require().NoError(db.Create(tag).Error)
	return tag
}

func createTestTask(s *suite.Suite, db *gorm.DB, description string, projectID, statusID uint64) *models.Task {
	task := &models.Task{
		Description: description,
		ProjectID:   projectID,
		StatusID:    statusID,
		Priority:    models.PriorityLow,
	}
	s.Require().NoError(db.Create(task).Error)
	return task
}
