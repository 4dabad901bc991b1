package main

import (
	"context"
	"log"
	"os"

	"researchhub/internal/database"
	"researchhub/internal/domain"
	"researchhub/internal/pkg/validator"
	"researchhub/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "researchhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	accountRepo := repository.NewAccountRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	contentRepo := repository.NewContentRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@researchhub.local"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin12345"
	}

	if _, err := accountRepo.GetByEmail(ctx, adminEmail); err == nil {
		log.Println("Admin account already exists, skipping seed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	admin := &domain.Account{
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         "Site Admin",
		Role:         domain.RoleAdmin,
		Status:       domain.StatusApproved,
	}
	// Seed data skips the HTTP binding layer, so validate here.
	if violations := validator.Validate(admin); violations != nil {
		log.Fatalf("invalid admin seed: %v", violations)
	}
	if err := accountRepo.Create(ctx, admin); err != nil {
		log.Fatal("seed admin failed:", err)
	}
	log.Printf("Seeded admin account %s (id=%d)", admin.Email, admin.ID)

	members := []domain.TeamMember{
		{Name: "Aisha Rahman", Role: "Director of Research", TeamRole: domain.TeamRoleFounder, DisplayOrder: 1},
		{Name: "Tomas Eriksen", Role: "Operations Lead", TeamRole: domain.TeamRoleCoordinator, DisplayOrder: 2},
		{Name: "Mei-Ling Chou", Role: "Research Fellow", TeamRole: domain.TeamRoleMember, DisplayOrder: 3},
	}
	for i := range members {
		if err := teamRepo.Create(ctx, &members[i]); err != nil {
			log.Fatal("seed team failed:", err)
		}
	}
	log.Printf("Seeded %d team members", len(members))

	sample := &domain.ContentItem{
		PublicID:    "00000000-0000-0000-0000-000000000001",
		Kind:        domain.KindResearch,
		Title:       "Welcome to the research hub",
		Description: "A short introduction to the organization's ongoing work.",
		Published:   true,
	}
	if err := contentRepo.Create(ctx, sample); err != nil {
		log.Fatal("seed content failed:", err)
	}

	defaults := map[string]string{
		"site_title":    "Research Hub",
		"contact_email": "hello@researchhub.local",
	}
	for k, v := range defaults {
		if err := settingRepo.Upsert(ctx, k, v); err != nil {
			log.Fatal("seed settings failed:", err)
		}
	}

	log.Println("Seed complete")
}
