package postgres_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	shiftDatamodel "github.com/widyatama/shift-management/internal/core/datamodel/shift"
	"github.com/widyatama/shift-management/internal/shift"
	shiftPostgres "github.com/widyatama/shift-management/internal/shift/postgres"
)

func TestShiftRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Shift Repository Suite")
}

const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE companies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	location TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE shifts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	company_id INTEGER NOT NULL REFERENCES companies (id),
	date TEXT NOT NULL,
	hour TEXT NOT NULL,
	position TEXT NOT NULL,
	service_description TEXT NOT NULL,
	payment TEXT NOT NULL,
	requirements TEXT,
	benefits TEXT,
	user_id INTEGER REFERENCES users (id),
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX shifts_occupant_idx ON shifts (user_id) WHERE user_id IS NOT NULL;
`

var _ = Describe("ShiftRepository", func() {
	var (
		db   *gorm.DB
		repo *shiftPostgres.Repository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).ToNot(HaveOccurred())

		sqlDB, err := db.DB()
		Expect(err).ToNot(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.Exec(testSchema).Error).ToNot(HaveOccurred())

		repo = shiftPostgres.NewRepository(db)
		ctx = context.Background()

		Expect(db.Exec(
			"INSERT INTO companies (id, name, location) VALUES (1, 'City General Hospital', 'Downtown')",
		).Error).ToNot(HaveOccurred())
		Expect(db.Exec(
			"INSERT INTO shifts (id, company_id, date, hour, position, service_description, payment) VALUES " +
				"(1, 1, '2025-03-02', '07:00 - 15:00', 'Emergency Room Nurse', 'ER nursing care', '$50/hr')," +
				"(2, 1, '2025-03-02', '08:00 - 16:00', 'Family Physician', 'Urgent care coverage', '$140/hr')," +
				"(3, 1, '2025-03-03', '09:00 - 17:00', 'Cardiologist', 'Consultations', '$180/hr')",
		).Error).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.Exec("DROP TABLE shifts; DROP TABLE companies; DROP TABLE users;").Error).ToNot(HaveOccurred())
	})

	occupantOf := func(shiftID int64) *int64 {
		row, err := repo.GetByID(ctx, shiftID)
		Expect(err).ToNot(HaveOccurred())
		return row.UserID
	}

	Describe("Assign", func() {
		It("should set the occupant of an open shift", func() {
			Expect(repo.Assign(ctx, 1, 7)).To(Succeed())
			Expect(occupantOf(1)).To(HaveValue(Equal(int64(7))))
		})

		It("should report a conflict when the shift is already occupied", func() {
			Expect(repo.Assign(ctx, 1, 7)).To(Succeed())

			err := repo.Assign(ctx, 1, 8)
			Expect(err).To(MatchError(shift.ErrConflict))
			Expect(occupantOf(1)).To(HaveValue(Equal(int64(7))))
		})

		It("should report a conflict for a missing shift", func() {
			err := repo.Assign(ctx, 999, 7)
			Expect(err).To(MatchError(shift.ErrConflict))
		})

		It("should reject a second shift for the same user via the occupancy index", func() {
			Expect(repo.Assign(ctx, 1, 7)).To(Succeed())

			err := repo.Assign(ctx, 2, 7)
			Expect(err).To(MatchError(shift.ErrAlreadyAssigned))
			Expect(occupantOf(2)).To(BeNil())
		})

		It("should allow distinct users on distinct shifts", func() {
			Expect(repo.Assign(ctx, 1, 7)).To(Succeed())
			Expect(repo.Assign(ctx, 2, 8)).To(Succeed())
		})
	})

	Describe("Release", func() {
		It("should clear the occupant when the owner releases", func() {
			Expect(repo.Assign(ctx, 1, 7)).To(Succeed())
			Expect(repo.Release(ctx, 1, 7)).To(Succeed())
			Expect(occupantOf(1)).To(BeNil())
		})

		It("should report a conflict when a non-owner releases", func() {
			Expect(repo.Assign(ctx, 1, 7)).To(Succeed())

			err := repo.Release(ctx, 1, 8)
			Expect(err).To(MatchError(shift.ErrConflict))
			Expect(occupantOf(1)).To(HaveValue(Equal(int64(7))))
		})

		It("should report a conflict when the shift is unassigned", func() {
			err := repo.Release(ctx, 1, 7)
			Expect(err).To(MatchError(shift.ErrConflict))
		})

		It("should free the user for a new assignment", func() {
			Expect(repo.Assign(ctx, 1, 7)).To(Succeed())
			Expect(repo.Release(ctx, 1, 7)).To(Succeed())
			Expect(repo.Assign(ctx, 2, 7)).To(Succeed())
		})
	})

	Describe("ListAvailable", func() {
		It("should list open shifts ordered by date and hour", func() {
			rows, err := repo.ListAvailable(ctx, "")

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0].Position).To(Equal("Emergency Room Nurse"))
			Expect(rows[0].CompanyName).To(Equal("City General Hospital"))
			Expect(rows[2].Date).To(Equal("2025-03-03"))
		})

		It("should exclude occupied shifts", func() {
			Expect(repo.Assign(ctx, 1, 7)).To(Succeed())

			rows, err := repo.ListAvailable(ctx, "")
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(2))
		})

		It("should filter by date", func() {
			rows, err := repo.ListAvailable(ctx, "2025-03-03")
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Position).To(Equal("Cardiologist"))
		})
	})

	Describe("ListByOccupant", func() {
		It("should return the user's shift", func() {
			Expect(repo.Assign(ctx, 3, 7)).To(Succeed())

			rows, err := repo.ListByOccupant(ctx, 7)
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ID).To(Equal(int64(3)))
		})

		It("should return nothing for a user without a shift", func() {
			rows, err := repo.ListByOccupant(ctx, 7)
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})

	Describe("GetByID", func() {
		It("should report a missing shift", func() {
			_, err := repo.GetByID(ctx, 999)
			Expect(err).To(MatchError(shift.ErrShiftNotFound))
		})
	})

	Describe("GetByIDWithCompany", func() {
		It("should join the company fields", func() {
			row, err := repo.GetByIDWithCompany(ctx, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(row.CompanyName).To(Equal("City General Hospital"))
			Expect(row.CompanyLocation).To(Equal("Downtown"))
		})

		It("should report a missing shift", func() {
			_, err := repo.GetByIDWithCompany(ctx, 999)
			Expect(err).To(MatchError(shift.ErrShiftNotFound))
		})
	})
})

var _ = Describe("shift datamodel", func() {
	It("should map to the shifts table", func() {
		Expect(shiftDatamodel.Shift{}.TableName()).To(Equal("shifts"))
	})
})
