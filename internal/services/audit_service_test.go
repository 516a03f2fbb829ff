package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

type AuditServiceTestSuite struct {
	suite.Suite
	db *gorm.DB
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.db = openTestDB(&suite.Suite)
}

func (suite *AuditServiceTestSuite) TearDownTest() {
	closeTestDB(&suite.Suite, suite.db)
}

func (suite *AuditServiceTestSuite) newService(queueSize int) *AuditService {
	return NewAuditService(repository.NewAuditRepository(suite.db), zap.NewNop(), queueSize)
}

func (suite *AuditServiceTestSuite) TestRecordWritesEntry() {
	user := createTestUser(&suite.Suite, suite.db, "alice")
	service := suite.newService(8)

	entityID := uint64(42)
	service.Record(AuditEntry{
		UserID:     &user.ID,
		Action:     models.ActionCreateTask,
		EntityType: "task",
		EntityID:   &entityID,
		Details:    map[string]interface{}{"project_id": 1},
		IPAddress:  "10.0.0.1",
	})
	service.Close()

	entries, err := service.Recent(10)
	suite.NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(models.ActionCreateTask, entries[0].Action)
	suite.Equal("task", entries[0].EntityType)
	suite.Require().NotNil(entries[0].User)
	suite.Equal("alice", entries[0].User.Username)
	suite.JSONEq(`{"project_id": 1}`, string(entries[0].Details))
}

func (suite *AuditServiceTestSuite) TestRecordWithoutActor() {
	service := suite.newService(8)

	service.Record(AuditEntry{
		Action:     models.ActionResetDatabase,
		EntityType: "database",
	})
	service.Close()

	entries, err := service.Recent(10)
	suite.NoError(err)
	suite.Require().Len(entries, 1)
	suite.Nil(entries[0].UserID)
}

func (suite *AuditServiceTestSuite) TestRecordAfterCloseIsDropped() {
	service := suite.newService(8)
	service.Close()

	service.Record(AuditEntry{Action: models.ActionLogin, EntityType: "user"})

	entries, err := service.Recent(10)
	suite.NoError(err)
	suite.Empty(entries)
}

func (suite *AuditServiceTestSuite) TestPruneOlderThan() {
	service := suite.newService(8)
	defer service.Close()

	old := models.AuditLog{Action: models.ActionLogin, EntityType: "user"}
	suite.Require().NoError(suite.db.Create(&old).Error)
	suite.Require().NoError(suite.db.Model(&old).Update("created_at", time.Now().Add(-72*time.Hour)).Error)
	fresh := models.AuditLog{Action: models.ActionLogin, EntityType: "user"}
	suite.Require().NoError(suite.db.Create(&fresh).Error)

	pruned, err := service.PruneOlderThan(24 * time.Hour)
	suite.NoError(err)
	suite.Equal(int64(1), pruned)

	var remaining int64
	suite.db.Model(&models.AuditLog{}).Count(&remaining)
	suite.Equal(int64(1), remaining)
}

// TestWriteFailureNeverSurfaces drives the sink against a database that
// rejects the insert and checks the failure stays inside the worker.
func TestWriteFailureNeverSurfaces(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).WillReturnError(gorm.ErrInvalidDB)
	mock.ExpectRollback()

	service := NewAuditService(repository.NewAuditRepository(db), zap.NewNop(), 8)
	service.Record(AuditEntry{Action: models.ActionLogin, EntityType: "user"})
	service.Close()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
