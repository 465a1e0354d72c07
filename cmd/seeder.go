package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	countryDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/country"
	userDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/user"
	"github.com/evisarw/visa-management/internal/permission"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with baseline data",
	Long:  `Seed the permission catalog, default admin and officer accounts, and the country list.`,
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

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_permissions", "arrival_records", "user_applications", "visa_applications", "permissions", "countries", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		permissionIDs := seedPermissions(db)

		adminID := seedUser(db, "admin@evisa.gov.rw", "System", "Administrator", userDatamodel.RoleAdmin)
		officerID := seedUser(db, "officer@evisa.gov.rw", "Border", "Officer", userDatamodel.RoleOfficer)

		grantAll(db, adminID, permissionIDs)
		grant(db, officerID, permissionIDs, adminID,
			permission.ApplicationsView,
			permission.ApplicationsApprove,
			permission.ApplicationsReject,
			permission.ArrivalsView,
			permission.ArrivalsCreate,
			permission.ArrivalsUpdate,
		)

		seedCountries(db)

		fmt.Println("Seeding complete")
	},
}

func seedPermissions(db *gorm.DB) map[string]int64 {
	catalog := []struct {
		Name     string
		Category string
	}{
		{permission.ApplicationsView, "visa_applications"},
		{permission.ApplicationsUpdate, "visa_applications"},
		{permission.ApplicationsDelete, "visa_applications"},
		{permission.ApplicationsApprove, "visa_applications"},
		{permission.ApplicationsReject, "visa_applications"},
		{permission.ArrivalsView, "arrival_records"},
		{permission.ArrivalsCreate, "arrival_records"},
		{permission.ArrivalsUpdate, "arrival_records"},
		{permission.UsersView, "users"},
		{permission.UsersManage, "users"},
		{permission.PermissionsManage, "permissions"},
		{permission.CountriesManage, "countries"},
		{permission.ReportsView, "reports"},
		{permission.ReportsExport, "reports"},
	}

	ids := make(map[string]int64, len(catalog))
	for _, p := range catalog {
		var existing userDatamodel.Permission
		err := db.Where("name = ?", p.Name).First(&existing).Error
		if err == nil {
			ids[p.Name] = existing.ID
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to look up permission %s: %v", p.Name, err)
		}

		record := userDatamodel.Permission{Name: p.Name, Category: p.Category, IsActive: true}
		if err := db.Create(&record).Error; err != nil {
			log.Fatalf("failed to insert permission %s: %v", p.Name, err)
		}
		ids[p.Name] = record.ID
		fmt.Println("Seeded permission:", p.Name)
	}
	return ids
}

func seedUser(db *gorm.DB, email, firstName, lastName, role string) int64 {
	var existing userDatamodel.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("user %s already exists\n", email)
		return existing.ID
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("failed to look up user %s: %v", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	record := userDatamodel.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&record).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
	return record.ID
}

func grantAll(db *gorm.DB, userID int64, permissionIDs map[string]int64) {
	names := make([]string, 0, len(permissionIDs))
	for name := range permissionIDs {
		names = append(names, name)
	}
	grant(db, userID, permissionIDs, userID, names...)
}

func grant(db *gorm.DB, userID int64, permissionIDs map[string]int64, grantedBy int64, names ...string) {
	for _, name := range names {
		pid, ok := permissionIDs[name]
		if !ok {
			log.Fatalf("unknown permission %s", name)
		}

		var count int64
		if err := db.Model(&userDatamodel.UserPermission{}).
			Where("user_id = ? AND permission_id = ?", userID, pid).
			Count(&count).Error; err != nil {
			log.Fatalf("failed to check grant %s: %v", name, err)
		}
		if count > 0 {
			continue
		}

		record := userDatamodel.UserPermission{UserID: userID, PermissionID: pid, GrantedBy: &grantedBy}
		if err := db.Create(&record).Error; err != nil {
			log.Fatalf("failed to grant %s to user %d: %v", name, userID, err)
		}
	}
}

func seedCountries(db *gorm.DB) {
	countries := []struct {
		Name string
		ISO3 string
		ISO2 string
	}{
		{"Rwanda", "RWA", "RW"},
		{"Kenya", "KEN", "KE"},
		{"Uganda", "UGA", "UG"},
		{"Tanzania", "TZA", "TZ"},
		{"Burundi", "BDI", "BI"},
		{"Democratic Republic of the Congo", "COD", "CD"},
		{"South Africa", "ZAF", "ZA"},
		{"Nigeria", "NGA", "NG"},
		{"Ghana", "GHA", "GH"},
		{"Ethiopia", "ETH", "ET"},
		{"United States", "USA", "US"},
		{"United Kingdom", "GBR", "GB"},
		{"France", "FRA", "FR"},
		{"Germany", "DEU", "DE"},
		{"Belgium", "BEL", "BE"},
		{"Netherlands", "NLD", "NL"},
		{"China", "CHN", "CN"},
		{"India", "IND", "IN"},
		{"Japan", "JPN", "JP"},
		{"Canada", "CAN", "CA"},
	}

	for _, c := range countries {
		var count int64
		if err := db.Model(&countryDatamodel.Country{}).Where("iso3 = ?", c.ISO3).Count(&count).Error; err != nil {
			log.Fatalf("failed to check country %s: %v", c.ISO3, err)
		}
		if count > 0 {
			continue
		}

		iso2 := c.ISO2
		record := countryDatamodel.Country{Name: c.Name, ISO3: c.ISO3, ISO2: &iso2, IsActive: true}
		if err := db.Create(&record).Error; err != nil {
			log.Fatalf("failed to insert country %s: %v", c.Name, err)
		}
		fmt.Println("Seeded country:", c.Name)
	}
}
