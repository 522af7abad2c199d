package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/widyatama/shift-management/internal/company"
	companyPostgres "github.com/widyatama/shift-management/internal/company/postgres"
	companyDatamodel "github.com/widyatama/shift-management/internal/core/datamodel/company"
	shiftDatamodel "github.com/widyatama/shift-management/internal/core/datamodel/shift"
)

type seedShift struct {
	company            string
	date               string
	hour               string
	position           string
	serviceDescription string
	payment            string
	requirements       string
	benefits           string
}

var seedCompanies = []companyDatamodel.Company{
	{Name: "City General Hospital", Location: "Downtown, City Center"},
	{Name: "Riverside Medical Center", Location: "Riverside District"},
	{Name: "Northside Health Clinic", Location: "North County"},
}

var seedShifts = []seedShift{
	{"City General Hospital", "2025-03-02", "07:00 - 15:00", "Emergency Room Nurse", "Emergency department nursing care", "$50/hr", "RN license, ER experience, ACLS certification", "Sunday premium pay, meal voucher"},
	{"Riverside Medical Center", "2025-03-02", "08:00 - 16:00", "Family Physician", "Urgent care clinic coverage", "$140/hr", "Board certified in Family Medicine", "Sunday differential, CME allowance"},
	{"City General Hospital", "2025-03-03", "09:00 - 17:00", "Cardiologist", "Outpatient cardiology consultations", "$180/hr", "Board certified in Cardiology", "Premium parking, research opportunities"},
	{"Northside Health Clinic", "2025-03-03", "10:00 - 18:00", "Occupational Therapist", "Rehabilitation services", "$55/hr", "OT license, 2+ years experience", "Flexible schedule, CEU credits"},
	{"Riverside Medical Center", "2025-03-04", "07:00 - 19:00", "Labor & Delivery Nurse", "12-hour shift in L&D unit", "$58/hr", "RN license, L&D experience, NRP certification", "12-hour shift differential, meal provided"},
	{"City General Hospital", "2025-03-04", "14:00 - 22:00", "Pharmacist", "Hospital pharmacy coverage", "$75/hr", "PharmD, hospital experience", "Evening differential, education stipend"},
	{"Northside Health Clinic", "2025-03-05", "08:00 - 16:00", "Speech Therapist", "Pediatric speech therapy", "$60/hr", "SLP certification, pediatric experience", "Child-friendly schedule, CEU allowance"},
	{"Riverside Medical Center", "2025-03-05", "11:00 - 19:00", "Radiologist", "Diagnostic imaging interpretation", "$200/hr", "Board certified in Radiology", "Remote reading options available"},
	{"City General Hospital", "2025-03-06", "06:00 - 14:00", "Operating Room Tech", "Surgical technologist duties", "$35/hr", "Surgical Tech certification", "Early shift differential, scrubs provided"},
	{"Northside Health Clinic", "2025-03-06", "12:00 - 20:00", "Mental Health Counselor", "Outpatient counseling services", "$45/hr", "LMHC, experience with anxiety/depression", "Flexible schedule, supervision hours"},
	{"Riverside Medical Center", "2025-03-07", "15:00 - 23:00", "NICU Nurse", "Neonatal intensive care", "$65/hr", "RN license, NICU experience", "Evening differential, specialized training"},
	{"City General Hospital", "2025-03-07", "10:00 - 18:00", "Physical Medicine Physician", "PM&R consultations", "$160/hr", "Board certified in PM&R", "Research opportunities, CME allowance"},
	{"Northside Health Clinic", "2025-03-08", "09:00 - 17:00", "Dietitian", "Nutritional counseling", "$40/hr", "RD certification", "Weekend differential, flexible hours"},
	{"Riverside Medical Center", "2025-03-08", "19:00 - 07:00", "Critical Care Nurse", "ICU night shift coverage", "$70/hr", "RN license, ICU experience, CCRN preferred", "Night + weekend differential, breakfast provided"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample companies and shifts for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		ctx := context.Background()

		if clearData {
			fmt.Println("Clearing existing data...")
			if err := db.WithContext(ctx).Exec("DELETE FROM shifts").Error; err != nil {
				log.Fatalf("failed to clear shifts: %v", err)
			}
			if err := db.WithContext(ctx).Exec("DELETE FROM companies").Error; err != nil {
				log.Fatalf("failed to clear companies: %v", err)
			}
		}

		companyRepo := companyPostgres.NewRepository(db)

		companyIDs := make(map[string]int64, len(seedCompanies))
		for _, c := range seedCompanies {
			existing, err := companyRepo.GetByName(ctx, c.Name)
			if err == nil {
				fmt.Println("company already exists:", c.Name)
				companyIDs[c.Name] = existing.ID
				continue
			}
			if !errors.Is(err, company.ErrCompanyNotFound) {
				log.Fatalf("failed to look up company %s: %v", c.Name, err)
			}

			row := c
			if err := companyRepo.Create(ctx, &row); err != nil {
				log.Fatalf("failed to insert company %s: %v", c.Name, err)
			}
			companyIDs[c.Name] = row.ID
			fmt.Println("Seeded company:", c.Name)
		}

		for _, s := range seedShifts {
			companyID, ok := companyIDs[s.company]
			if !ok {
				log.Fatalf("unknown company in seed data: %s", s.company)
			}

			var count int64
			err := db.WithContext(ctx).Model(&shiftDatamodel.Shift{}).
				Where("company_id = ? AND date = ? AND hour = ? AND position = ?", companyID, s.date, s.hour, s.position).
				Count(&count).Error
			if err != nil {
				log.Fatalf("failed to check shift: %v", err)
			}
			if count > 0 {
				continue
			}

			requirements := s.requirements
			benefits := s.benefits
			row := shiftDatamodel.Shift{
				CompanyID:          companyID,
				Date:               s.date,
				Hour:               s.hour,
				Position:           s.position,
				ServiceDescription: s.serviceDescription,
				Payment:            s.payment,
				Requirements:       &requirements,
				Benefits:           &benefits,
			}
			if err := db.WithContext(ctx).Create(&row).Error; err != nil {
				log.Fatalf("failed to insert shift %s %s: %v", s.date, s.position, err)
			}
			fmt.Println("Seeded shift:", s.date, s.position)
		}

		fmt.Println("Seeding completed")
	},
}
