package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"clinicbook/internal/config"
	"clinicbook/internal/database"
	"clinicbook/internal/domain"
	jwtsvc "clinicbook/internal/pkg/jwt"
	"clinicbook/internal/pkg/logger"
	"clinicbook/internal/repository"
)

const description = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Donec ac augue ullamcorper, pharetra orci mollis, auctor tellus. Phasellus pharetra erat ac libero efficitur tempus. Donec pretium convallis iaculis. Etiam eu felis sollicitudin, cursus mi vitae, iaculis magna. Nam non erat neque. In hac habitasse platea dictumst. Pellentesque molestie accumsan tellus id laoreet."

var clinics = []struct {
	name, address, image string
}{
	{"OdontoVida Clínica Odontológica", "Av. Paulista, 1500 - Bela Vista, São Paulo - SP", "https://plus.unsplash.com/premium_photo-1661322688147-76db73c4f598?q=80&w=400&auto=format&fit=crop"},
	{"Sorrisso - Centro Odontológico", "Rua Augusta, 2450 - Jardins, São Paulo - SP", "https://plus.unsplash.com/premium_photo-1675686363507-22a8d0e11b4c?q=80&w=400&auto=format&fit=crop"},
	{"DentalCare Premium", "Av. Brigadeiro Faria Lima, 3064 - Itaim Bibi, São Paulo - SP", "https://images.unsplash.com/photo-1704455306925-1401c3012117?q=80&w=400&auto=format&fit=crop"},
	{"Clínica Dental Excellence", "Rua Oscar Freire, 1200 - Cerqueira César, São Paulo - SP", "https://images.unsplash.com/photo-1629909613654-28e377c37b09?w=400"},
	{"OdontoPro - Saúde Bucal", "Av. das Nações Unidas, 4777 - Vila Olímpia, São Paulo - SP", "https://images.unsplash.com/photo-1740410643780-883b33ee1b86?q=80&w=400&auto=format&fit=crop"},
	{"SmilePlus Odontologia", "Rua Haddock Lobo, 595 - Cerqueira César, São Paulo - SP", "https://plus.unsplash.com/premium_photo-1682145288913-979906a9ebc8?q=80&w=400&auto=format&fit=crop"},
	{"Centro Odontológico Sorriso Novo", "Av. Angélica, 2530 - Consolação, São Paulo - SP", "https://plus.unsplash.com/premium_photo-1675686363532-f4ad697ecb46?q=80&w=400&auto=format&fit=crop"},
	{"Clínica DentalHealth", "Rua Teodoro Sampaio, 1020 - Pinheiros, São Paulo - SP", "https://images.unsplash.com/photo-1704455306251-b4634215d98f?q=80&w=400&auto=format&fit=crop"},
	{"Odontologia Integrada Vita", "Av. Europa, 158 - Jardim Europa, São Paulo - SP", "https://plus.unsplash.com/premium_photo-1675686363399-91ad6111f82d?q=80&w=400&auto=format&fit=crop"},
	{"Perfect Smile Odontologia", "Rua Bela Cintra, 756 - Consolação, São Paulo - SP", "https://images.unsplash.com/photo-1740410643780-883b33ee1b86?q=80&w=400&auto=format&fit=crop"},
}

var menu = []struct {
	name, description, price, image string
}{
	{"Consulta de Avaliação", "Avaliação completa da saúde bucal com exame clínico detalhado.", "120.00", "https://images.unsplash.com/photo-1609840114035-3c981b782dfe?w=300"},
	{"Limpeza Dental (Profilaxia)", "Remoção de placa bacteriana e tártaro para manter a saúde bucal.", "150.00", "https://images.unsplash.com/photo-1606811971618-4486d14f3f99?w=300"},
	{"Restauração em Resina", "Tratamento de cáries com material estético de alta qualidade.", "180.00", "https://images.unsplash.com/photo-1588776814546-1ffcf47267a5?w=300"},
	{"Clareamento Dental", "Procedimento para deixar os dentes mais brancos e brilhantes.", "450.00", "https://images.unsplash.com/photo-1606811841689-23dfddce3e95?w=300"},
	{"Extração Dentária", "Remoção segura de dentes comprometidos ou inclusos.", "200.00", "https://images.unsplash.com/photo-1739902526173-06750b78cfb7?q=80&w=300&auto=format&fit=crop"},
	{"Canal (Endodontia)", "Tratamento de canal para salvar dentes com polpa comprometida.", "380.00", "https://images.unsplash.com/photo-1588776814546-1ffcf47267a5?w=300"},
	{"Prótese Dentária", "Reposição de dentes perdidos com próteses personalizadas.", "850.00", "https://images.unsplash.com/photo-1606811971618-4486d14f3f99?w=300"},
	{"Implante Dentário", "Reposição de raiz dentária com parafuso de titânio.", "1200.00", "https://images.unsplash.com/photo-1590424693420-634a0b0b782c?q=80&w=300&auto=format&fit=crop"},
	{"Ortodontia (Aparelho)", "Correção do posicionamento dos dentes e mordida.", "320.00", "https://images.unsplash.com/photo-1606811841689-23dfddce3e95?w=300"},
	{"Periodontia", "Tratamento de doenças da gengiva e estruturas de suporte.", "280.00", "https://images.unsplash.com/photo-1609840114035-3c981b782dfe?w=300"},
}

const (
	superAdminID  = "dev-super-admin"
	clinicAdminID = "dev-clinic-admin"
	clientID      = "dev-client"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.New(logger.Options{})
		l.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true})

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	// Cleanup old data (children first)
	log.Info().Msg("cleaning old data")
	for _, table := range []string{"booking_lines", "bookings", "services", "venue_admins", "venues", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatal().Err(err).Str("table", table).Msg("cleanup failed")
		}
	}

	venues := repository.NewVenueRepository(db)
	services := repository.NewServiceRepository(db)
	users := repository.NewUserRepository(db)

	// ================== CLINICS ==================
	log.Info().Int("count", len(clinics)).Msg("creating clinics")
	var first *domain.Venue
	for _, c := range clinics {
		v := &domain.Venue{
			Name:              c.name,
			Address:           c.address,
			Description:       description,
			Phones:            []string{"(11) 99999-9999", "(11) 99999-9999"},
			ImageURL:          c.image,
			MaxClientsPerSlot: 1,
			BarbersCount:      1,
		}
		if err := venues.Create(ctx, v); err != nil {
			log.Fatal().Err(err).Str("venue", c.name).Msg("create venue")
		}
		if first == nil {
			first = v
		}

		for _, m := range menu {
			s := &domain.Service{
				VenueID:     v.ID,
				Name:        m.name,
				Description: m.description,
				Price:       decimal.RequireFromString(m.price),
				ImageURL:    m.image,
			}
			if err := services.Create(ctx, s); err != nil {
				log.Fatal().Err(err).Str("service", m.name).Msg("create service")
			}
		}
	}

	// ================== USERS ==================
	log.Info().Msg("creating users")
	if err := users.Upsert(ctx, &domain.User{ID: superAdminID, Name: "Super Admin", Role: domain.RoleSuperAdmin}); err != nil {
		log.Fatal().Err(err).Msg("create super admin")
	}
	if err := users.Upsert(ctx, &domain.User{ID: clientID, Name: "Cliente", Role: domain.RoleClient}); err != nil {
		log.Fatal().Err(err).Msg("create client")
	}
	if err := users.GrantVenueAdmin(ctx, &domain.VenueAdmin{UserID: clinicAdminID, VenueID: first.ID}); err != nil {
		log.Fatal().Err(err).Msg("link clinic admin")
	}

	// Dev tokens, signed with the configured secret.
	tokens := jwtsvc.New(cfg.JWTSecret, 30*24*time.Hour)
	for _, id := range []string{superAdminID, clinicAdminID, clientID} {
		token, err := tokens.GenerateToken(id)
		if err != nil {
			log.Fatal().Err(err).Msg("sign dev token")
		}
		log.Info().Str("user_id", id).Str("token", token).Msg("dev token")
	}

	log.Info().
		Int("clinics", len(clinics)).
		Int("services", len(clinics)*len(menu)).
		Str("admin_venue", first.ID).
		Msg("seed complete")
}
