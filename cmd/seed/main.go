package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sekolahdigital/lms-backend/internal/config"
	"github.com/sekolahdigital/lms-backend/internal/database"
	"github.com/sekolahdigital/lms-backend/internal/logger"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/repository"
	"github.com/sekolahdigital/lms-backend/internal/security"
	"github.com/sekolahdigital/lms-backend/internal/service"
)

// Demo dataset: one admin, two teachers, twenty students, two classes
// with subjects and enrollments. Safe to rerun; existing emails are
// skipped.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)

	authService := service.NewAuthService(cfg, userRepo, security.NewMemoryCounterStore(), nil, log)
	userService := service.NewUserService(userRepo, authService, log)
	classService := service.NewClassService(classRepo)
	subjectService := service.NewSubjectService(subjectRepo, log)

	fmt.Println("=== Seeding demo school ===")

	// Accounts. The shared password is for demo logins only.
	accounts := []model.CreateUserRequest{
		{Name: "Admin Sekolah", Email: "admin@sekolah.test", Password: "password123", Role: model.RoleAdmin},
		{Name: "Dewi Anggraini", Email: "dewi@sekolah.test", Password: "password123", Role: model.RoleTeacher},
		{Name: "Hendra Gunawan", Email: "hendra@sekolah.test", Password: "password123", Role: model.RoleTeacher},
	}

	studentNames := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Ika Sari", "Lukman Hakim", "Maya Septiana", "Nanda Pratama", "Putri Dian",
		"Rafi Ahmad", "Siska Saraswati", "Toni Setiawan", "Vina Panduwinata", "Wahyu Hidayat",
	}
	for i, name := range studentNames {
		accounts = append(accounts, model.CreateUserRequest{
			Name:     name,
			Email:    fmt.Sprintf("student%d@sekolah.test", i+1),
			Password: "password123",
			Role:     model.RoleStudent,
		})
	}

	users := make(map[string]*model.User)
	created := 0
	for i := range accounts {
		u, err := userService.Create(ctx, &accounts[i])
		if err == service.ErrEmailTaken {
			u, err = userRepo.GetByEmail(ctx, accounts[i].Email)
		}
		if err != nil {
			log.Fatal().Err(err).Str("email", accounts[i].Email).Msg("Failed to seed user")
		}
		users[accounts[i].Email] = u
		created++
	}
	fmt.Printf("Users ready: %d\n", created)

	// Classes.
	classes := []model.CreateClassRequest{
		{Name: "Kelas 10-A", Teacher: "Dewi Anggraini", Year: time.Now().Year()},
		{Name: "Kelas 10-B", Teacher: "Hendra Gunawan", Year: time.Now().Year()},
	}
	classIDs := make([]int, 0, len(classes))
	for i := range classes {
		c, err := classService.Create(ctx, &classes[i])
		if err != nil {
			log.Fatal().Err(err).Str("class", classes[i].Name).Msg("Failed to seed class")
		}
		classIDs = append(classIDs, c.ID)
	}
	fmt.Printf("Classes ready: %d\n", len(classIDs))

	// Subjects, linked to both classes.
	subjectNames := []string{"Matematika", "Bahasa Indonesia", "Bahasa Inggris", "Fisika", "Biologi"}
	for _, name := range subjectNames {
		sub, err := subjectService.Create(ctx, name)
		if err == service.ErrSubjectNameTaken {
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("subject", name).Msg("Failed to seed subject")
		}
		for _, classID := range classIDs {
			if err := classRepo.AddSubject(ctx, classID, sub.ID); err != nil {
				log.Fatal().Err(err).Msg("Failed to link subject to class")
			}
		}
	}
	fmt.Printf("Subjects ready: %d\n", len(subjectNames))

	// Enrollments: teachers to their classes, students split between them.
	enroll := func(classID, userID int, role model.RoleInClass) {
		if err := classService.Enroll(ctx, classID, userID, role); err != nil {
			log.Fatal().Err(err).Int("class_id", classID).Int("user_id", userID).Msg("Failed to enroll")
		}
	}
	enroll(classIDs[0], users["dewi@sekolah.test"].ID, model.InClassTeacher)
	enroll(classIDs[1], users["hendra@sekolah.test"].ID, model.InClassTeacher)
	for i := range studentNames {
		email := fmt.Sprintf("student%d@sekolah.test", i+1)
		enroll(classIDs[i%2], users[email].ID, model.InClassStudent)
	}

	fmt.Println("Done. Login with admin@sekolah.test / password123")
}
