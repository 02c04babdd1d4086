package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"cinereserve/internal/auditoriums"
	"cinereserve/internal/genres"
	"cinereserve/internal/movies"
	"cinereserve/internal/shared/config"
	"cinereserve/internal/shared/database"
	"cinereserve/internal/showtimes"
	"cinereserve/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config
}

func main() {
	fmt.Println("Starting CineReserve database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, cfg: cfg}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed! Database is ready.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"reservation_seats",
		"reservations",
		"showtimes",
		"seats",
		"auditoriums",
		"movies",
		"genres",
		"users",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedSuperAdmin(); err != nil {
		return err
	}

	genreList, err := s.seedGenres()
	if err != nil {
		return err
	}

	movieList, err := s.seedMovies(genreList)
	if err != nil {
		return err
	}

	auditoriumList, err := s.seedAuditoriums()
	if err != nil {
		return err
	}

	return s.seedShowtimes(movieList, auditoriumList)
}

func (s *Seeder) seedSuperAdmin() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := users.User{
		Name:         s.cfg.Admin.Name,
		Email:        strings.ToLower(s.cfg.Admin.Email),
		PasswordHash: string(hash),
		Role:         users.RoleSuperAdmin,
	}
	if err := s.db.GetPostgreSQL().Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed super admin: %w", err)
	}

	fmt.Printf("  super admin: %s\n", admin.Email)
	return nil
}

func (s *Seeder) seedGenres() ([]genres.Genre, error) {
	names := []string{"Action", "Comedy", "Drama", "Horror", "Sci-Fi", "Animation"}

	list := make([]genres.Genre, 0, len(names))
	for _, name := range names {
		genre := genres.Genre{Name: name}
		if err := s.db.GetPostgreSQL().Create(&genre).Error; err != nil {
			return nil, fmt.Errorf("failed to seed genre %s: %w", name, err)
		}
		list = append(list, genre)
	}

	fmt.Printf("  genres: %d\n", len(list))
	return list, nil
}

func (s *Seeder) seedMovies(genreList []genres.Genre) ([]movies.Movie, error) {
	byName := make(map[string]genres.Genre, len(genreList))
	for _, genre := range genreList {
		byName[genre.Name] = genre
	}

	seed := []struct {
		title       string
		description string
		duration    int
		genre       string
	}{
		{"The Last Outpost", "A lone garrison holds against impossible odds.", 128, "Action"},
		{"Midnight Diner", "Strangers cross paths in an all-night eatery.", 104, "Drama"},
		{"Orbital Decay", "A salvage crew discovers their station is not abandoned.", 117, "Sci-Fi"},
		{"Punchline", "A washed-up comedian gets one last shot.", 96, "Comedy"},
		{"The Hollow House", "An inherited mansion remembers its former owners.", 109, "Horror"},
		{"Paper Kingdom", "A folded world unfolds for one small hero.", 88, "Animation"},
	}

	list := make([]movies.Movie, 0, len(seed))
	for _, m := range seed {
		movie := movies.Movie{
			Title:       m.title,
			Description: m.description,
			DurationMin: m.duration,
			Active:      true,
			GenreID:     byName[m.genre].ID,
		}
		if err := s.db.GetPostgreSQL().Create(&movie).Error; err != nil {
			return nil, fmt.Errorf("failed to seed movie %s: %w", m.title, err)
		}
		list = append(list, movie)
	}

	fmt.Printf("  movies: %d\n", len(list))
	return list, nil
}

func (s *Seeder) seedAuditoriums() ([]auditoriums.Auditorium, error) {
	layouts := []struct {
		name        string
		rows        int
		seatsPerRow int
	}{
		{"Screen 1", 8, 12},
		{"Screen 2", 6, 10},
		{"Screen 3", 10, 14},
	}

	list := make([]auditoriums.Auditorium, 0, len(layouts))
	for _, layout := range layouts {
		auditorium := auditoriums.Auditorium{Name: layout.name}
		if err := s.db.GetPostgreSQL().Create(&auditorium).Error; err != nil {
			return nil, fmt.Errorf("failed to seed auditorium %s: %w", layout.name, err)
		}

		seats := make([]auditoriums.Seat, 0, layout.rows*layout.seatsPerRow)
		for row := 0; row < layout.rows; row++ {
			rowLabel := string(rune('A' + row))
			for number := 1; number <= layout.seatsPerRow; number++ {
				seats = append(seats, auditoriums.Seat{
					AuditoriumID: auditorium.ID,
					RowLabel:     rowLabel,
					SeatNumber:   number,
				})
			}
		}
		if err := s.db.GetPostgreSQL().CreateInBatches(&seats, 100).Error; err != nil {
			return nil, fmt.Errorf("failed to seed seats for %s: %w", layout.name, err)
		}

		list = append(list, auditorium)
	}

	fmt.Printf("  auditoriums: %d\n", len(list))
	return list, nil
}

func (s *Seeder) seedShowtimes(movieList []movies.Movie, auditoriumList []auditoriums.Auditorium) error {
	// Three screenings a day per auditorium for the next week, cycling
	// through the movie catalog.
	slots := []int{13, 17, 21}
	prices := []int64{1000, 1250, 1500}

	count := 0
	movieIdx := 0
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for day := 0; day < 7; day++ {
		for _, auditorium := range auditoriumList {
			for slotIdx, hour := range slots {
				movie := movieList[movieIdx%len(movieList)]
				movieIdx++

				start := today.AddDate(0, 0, day+1).Add(time.Duration(hour) * time.Hour)
				showtime := showtimes.Showtime{
					MovieID:      movie.ID,
					AuditoriumID: auditorium.ID,
					StartTime:    start,
					EndTime:      start.Add(time.Duration(movie.DurationMin) * time.Minute),
					PriceCents:   prices[slotIdx],
				}
				if err := s.db.GetPostgreSQL().Create(&showtime).Error; err != nil {
					return fmt.Errorf("failed to seed showtime: %w", err)
				}
				count++
			}
		}
	}

	fmt.Printf("  showtimes: %d\n", count)
	return nil
}
