package repositories

import (
	"context"
	"fmt"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"gorm.io/gorm"
)

const seedPassword = "123456"

type seedUser struct {
	name, email string
	userType    models.UserType
}

var seedUsers = []seedUser{
	{"TechCorp Ltda", "empresa@techcorp.com", models.CompanyUser},
	{"João Silva", "joao@email.com", models.CandidateUser},
	{"Amanda Silva", "amanda@email.com", models.CandidateUser},
	{"Bruno Ferreira", "bruno@email.com", models.CandidateUser},
	{"Carla Oliveira", "carla@email.com", models.CandidateUser},
	{"InnovaTech", "contato@innovatech.com", models.CompanyUser},
}

// Seed fills an empty database with demo accounts, jobs and applications.
// Every demo account uses the password 123456.
func (c *DbContext) Seed(ctx context.Context, hashPassword func(string) (string, error)) error {
	var usersCount int64
	if err := c.DB.WithContext(ctx).Model(&models.User{}).Count(&usersCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if usersCount > 0 {
		return nil
	}

	hash, err := hashPassword(seedPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := make([]*models.User, 0, len(seedUsers))
		for _, su := range seedUsers {
			users = append(users, &models.User{
				Name:         su.name,
				Email:        su.email,
				PasswordHash: hash,
				Type:         su.userType,
			})
		}
		if err := tx.Create(users).Error; err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}

		techCorp, joao, amanda, bruno, carla, innova := users[0].ID, users[1].ID, users[2].ID, users[3].ID, users[4].ID, users[5].ID

		if err := tx.Create(seedCompanyProfiles(techCorp, innova)).Error; err != nil {
			return fmt.Errorf("failed to create company profiles: %w", err)
		}
		if err := tx.Create(seedCandidateProfiles(joao, amanda, bruno, carla)).Error; err != nil {
			return fmt.Errorf("failed to create candidate profiles: %w", err)
		}

		jobs := seedJobs(techCorp, innova)
		if err := tx.Create(jobs).Error; err != nil {
			return fmt.Errorf("failed to create jobs: %w", err)
		}

		applications := []*models.Application{
			{CandidateID: amanda, JobID: jobs[1].ID, Status: models.StatusUnderReview, CurrentStage: models.StageInterview},
			{CandidateID: bruno, JobID: jobs[2].ID, Status: models.StatusUnderReview, CurrentStage: models.StageTechnicalTest},
			{CandidateID: carla, JobID: jobs[0].ID, Status: models.StatusPending, CurrentStage: models.StageResumeAnalysis},
			{CandidateID: joao, JobID: jobs[4].ID, Status: models.StatusApproved, CurrentStage: models.StageHired},
		}
		for _, app := range applications {
			app.JobSource = models.DefaultJobSource
		}
		if err := tx.Create(applications).Error; err != nil {
			return fmt.Errorf("failed to create applications: %w", err)
		}

		var history []models.StageHistory
		for _, app := range applications {
			history = append(history, seedHistory(app)...)
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("failed to create stage history: %w", err)
		}

		favorites := []models.Favorite{
			{CandidateID: joao, JobID: jobs[0].ID},
			{CandidateID: amanda, JobID: jobs[0].ID},
			{CandidateID: bruno, JobID: jobs[3].ID},
		}
		if err := tx.Create(favorites).Error; err != nil {
			return fmt.Errorf("failed to create favorites: %w", err)
		}

		if err := tx.Create(seedResumes(joao, amanda, bruno, carla)).Error; err != nil {
			return fmt.Errorf("failed to create resumes: %w", err)
		}

		return nil
	})
}

// seedHistory records every stage the application went through up to its current one.
func seedHistory(app *models.Application) []models.StageHistory {
	var history []models.StageHistory
	for _, stage := range models.Pipeline[:app.CurrentStage.Index()+1] {
		outcome := models.OutcomePassed
		if stage == app.CurrentStage && stage != models.StageHired {
			outcome = models.OutcomePending
		}
		history = append(history, models.StageHistory{ApplicationID: app.ID, Stage: stage, Status: outcome})
	}
	return history
}

func seedCompanyProfiles(techCorp, innova int64) []models.CompanyProfile {
	return []models.CompanyProfile{
		{
			UserID:      techCorp,
			CompanyName: "TechCorp Ltda",
			Description: "Empresa de tecnologia focada em soluções inovadoras",
			Industry:    "Tecnologia",
			Size:        "50-100",
			Website:     "https://techcorp.com",
			Location:    "São Paulo, SP",
			LinkedIn:    "https://linkedin.com/company/techcorp",
		},
		{
			UserID:      innova,
			CompanyName: "InnovaTech",
			Description: "Startup de tecnologia em crescimento",
			Industry:    "Tecnologia",
			Size:        "10-50",
			Website:     "https://innovatech.com",
			Location:    "Rio de Janeiro, RJ",
			LinkedIn:    "https://linkedin.com/company/innovatech",
		},
	}
}

func seedCandidateProfiles(joao, amanda, bruno, carla int64) []models.CandidateProfile {
	endDate := "2024-01"
	return []models.CandidateProfile{
		{
			UserID:               joao,
			Phone:                "(11) 99999-0001",
			Location:             "São Paulo, SP",
			ProfileTitle:         "Desenvolvedor Full Stack",
			Bio:                  "Desenvolvedor apaixonado por tecnologia e inovação.",
			ProfessionalInterest: models.InterestFindJob,
			Skills:               models.JSONList[string]{"JavaScript", "React", "Node.js", "Python"},
			Experience: seedEntries(models.ExperienceEntry{
				Title:          "Desenvolvedor Jr",
				Company:        "Tech Corp",
				EmploymentType: "tempo_integral",
				Location:       "São Paulo, SP",
				LocationType:   "presencial",
				StartDate:      "2022-01",
				EndDate:        &endDate,
				Description:    "Desenvolvimento de aplicações web usando React e Node.js",
				Skills:         []string{"React", "Node.js", "JavaScript"},
			}),
			Education: seedEntries(models.EducationEntry{Degree: "Ciência da Computação", Institution: "USP", Year: "2022"}),
			Languages: models.JSONList[string]{"Português", "Inglês"},
			LinkedIn:  "https://linkedin.com/in/joaosilva",
			GitHub:    "https://github.com/joaosilva",
			Portfolio: "https://joaosilva.dev",
		},
		{
			UserID:               amanda,
			Phone:                "(11) 99999-0002",
			Location:             "São Paulo, SP",
			ProfileTitle:         "Analista de Dados Sênior",
			Bio:                  "Especialista em análise de dados com foco em insights de negócio.",
			ProfessionalInterest: models.InterestFindJob,
			Skills:               models.JSONList[string]{"Python", "SQL", "Power BI", "Machine Learning"},
			Experience: seedEntries(models.ExperienceEntry{
				Title:          "Analista de Dados",
				Company:        "Data Inc",
				EmploymentType: "tempo_integral",
				Location:       "São Paulo, SP",
				LocationType:   "hibrido",
				StartDate:      "2021-03",
				Current:        true,
				Description:    "Análise de dados e criação de dashboards para tomada de decisão",
				Skills:         []string{"Python", "SQL", "Power BI"},
			}),
			Education: seedEntries(models.EducationEntry{Degree: "Estatística", Institution: "UNICAMP", Year: "2021"}),
			Languages: models.JSONList[string]{"Português", "Inglês"},
			LinkedIn:  "https://linkedin.com/in/amandasilva",
			GitHub:    "https://github.com/amandasilva",
			Portfolio: "https://amanda-portfolio.com",
		},
		{
			UserID:               bruno,
			Phone:                "(21) 99999-0003",
			Location:             "Rio de Janeiro, RJ",
			ProfileTitle:         "Desenvolvedor Front-End",
			Bio:                  "Front-end developer com experiência em UX/UI design.",
			ProfessionalInterest: models.InterestProvide,
			Skills:               models.JSONList[string]{"React", "TypeScript", "CSS", "JavaScript", "Figma"},
			Experience: seedEntries(models.ExperienceEntry{
				Title:          "Desenvolvedor Front-End",
				Company:        "Web Solutions",
				EmploymentType: "tempo_integral",
				Location:       "Rio de Janeiro, RJ",
				LocationType:   "remoto",
				StartDate:      "2019-06",
				Current:        true,
				Description:    "Desenvolvimento de interfaces modernas e responsivas",
				Skills:         []string{"React", "TypeScript", "CSS"},
			}),
			Education: seedEntries(models.EducationEntry{Degree: "Design Digital", Institution: "PUC-RJ", Year: "2019"}),
			Languages: models.JSONList[string]{"Português", "Inglês", "Espanhol"},
			LinkedIn:  "https://linkedin.com/in/brunoferreira",
			GitHub:    "https://github.com/brunoferreira",
			Portfolio: "https://bruno-design.com",
		},
		{
			UserID:               carla,
			Phone:                "(31) 99999-0004",
			Location:             "Belo Horizonte, MG",
			ProfileTitle:         "Gerente de Projetos",
			Bio:                  "Gerente de projetos experiente em metodologias ágeis.",
			ProfessionalInterest: models.InterestHire,
			Skills:               models.JSONList[string]{"Scrum", "Agile", "Jira", "Liderança", "Gestão de Projetos"},
			Experience: seedEntries(models.ExperienceEntry{
				Title:          "Gerente de Projetos",
				Company:        "Project Masters",
				EmploymentType: "tempo_integral",
				Location:       "Belo Horizonte, MG",
				LocationType:   "hibrido",
				StartDate:      "2017-01",
				Current:        true,
				Description:    "Gestão de projetos de tecnologia usando metodologias ágeis",
				Skills:         []string{"Scrum", "Agile", "Jira"},
			}),
			Education: seedEntries(models.EducationEntry{Degree: "Administração", Institution: "UFMG", Year: "2017"}),
			Languages: models.JSONList[string]{"Português", "Inglês"},
			LinkedIn:  "https://linkedin.com/in/carlaoliveira",
			Portfolio: "https://carla-pm.com",
		},
	}
}

func seedJobs(techCorp, innova int64) []*models.Job {
	return []*models.Job{
		{
			CompanyID:      techCorp,
			Title:          "Desenvolvedor Full Stack Sênior",
			Description:    "Procuramos um desenvolvedor experiente para nossa equipe de tecnologia. Você será responsável por desenvolver e manter aplicações web modernas, trabalhando tanto no frontend quanto no backend.",
			Requirements:   models.JSONList[string]{"React", "Node.js", "TypeScript", "PostgreSQL", "5+ anos de experiência"},
			Location:       "São Paulo, SP",
			WorkLocation:   "Híbrido",
			Salary:         "R$ 8.000 - R$ 12.000",
			JobType:        "full-time",
			EmploymentType: "tempo_integral",
			Tags:           models.JSONList[string]{"desenvolvedor", "fullstack", "senior", "react", "node.js", "híbrido"},
			Status:         models.JobActive,
		},
		{
			CompanyID:      techCorp,
			Title:          "Analista de Dados Pleno",
			Description:    "Oportunidade para analista de dados com foco em business intelligence. Você irá trabalhar com grandes volumes de dados para gerar insights estratégicos.",
			Requirements:   models.JSONList[string]{"Python", "SQL", "Power BI", "Estatística", "3+ anos de experiência"},
			Location:       "São Paulo, SP",
			WorkLocation:   "Remoto",
			Salary:         "R$ 6.000 - R$ 9.000",
			JobType:        "full-time",
			EmploymentType: "tempo_integral",
			Tags:           models.JSONList[string]{"analista", "dados", "pleno", "python", "sql", "remoto"},
			Status:         models.JobActive,
		},
		{
			CompanyID:      innova,
			Title:          "Designer UX/UI Junior",
			Description:    "Estamos buscando um designer criativo para melhorar a experiência do usuário em nossos produtos digitais.",
			Requirements:   models.JSONList[string]{"Figma", "Adobe XD", "Prototyping", "User Research", "1+ ano de experiência"},
			Location:       "Rio de Janeiro, RJ",
			WorkLocation:   "Presencial",
			Salary:         "R$ 4.000 - R$ 6.000",
			JobType:        "full-time",
			EmploymentType: "tempo_integral",
			Tags:           models.JSONList[string]{"design", "ux", "ui", "junior", "figma", "presencial"},
			Status:         models.JobActive,
		},
		{
			CompanyID:      innova,
			Title:          "Desenvolvedor Mobile React Native",
			Description:    "Desenvolvedor mobile para criar aplicativos inovadores usando React Native.",
			Requirements:   models.JSONList[string]{"React Native", "JavaScript", "TypeScript", "Mobile", "2+ anos de experiência"},
			Location:       "Rio de Janeiro, RJ",
			WorkLocation:   "Híbrido",
			Salary:         "R$ 7.000 - R$ 10.000",
			JobType:        "full-time",
			EmploymentType: "tempo_integral",
			Tags:           models.JSONList[string]{"desenvolvedor", "mobile", "react native", "pleno", "híbrido"},
			Status:         models.JobActive,
		},
		{
			CompanyID:      techCorp,
			Title:          "Estágio em Desenvolvimento Web",
			Description:    "Oportunidade de estágio para estudantes de tecnologia interessados em desenvolvimento web.",
			Requirements:   models.JSONList[string]{"HTML", "CSS", "JavaScript", "Estudante de tecnologia"},
			Location:       "São Paulo, SP",
			WorkLocation:   "Presencial",
			Salary:         "R$ 1.500",
			JobType:        "internship",
			EmploymentType: "estagio",
			Tags:           models.JSONList[string]{"estágio", "desenvolvimento", "web", "javascript", "presencial"},
			Status:         models.JobActive,
		},
	}
}

func seedResumes(joao, amanda, bruno, carla int64) []models.Resume {
	return []models.Resume{
		{
			CandidateID: joao,
			Content:     "João Silva - Desenvolvedor\nExperiência: 2 anos em desenvolvimento web\nHabilidades: JavaScript, React, Node.js, Python\nFormação: Ciência da Computação - USP",
			FileName:    "joao_curriculo.pdf",
			FilePath:    "/uploads/curriculos/joao_curriculo.pdf",
		},
		{
			CandidateID: amanda,
			Content:     "Amanda Silva - Analista de Dados\nExperiência: 3 anos em análise de dados\nHabilidades: Python, SQL, Power BI, Machine Learning\nFormação: Estatística - UNICAMP",
			FileName:    "amanda_curriculo.pdf",
			FilePath:    "/uploads/curriculos/amanda_curriculo.pdf",
		},
		{
			CandidateID: bruno,
			Content:     "Bruno Ferreira - Desenvolvedor Front-End\nExperiência: 5 anos em desenvolvimento frontend\nHabilidades: React, TypeScript, CSS, JavaScript\nFormação: Design Digital - PUC-RJ",
			FileName:    "bruno_curriculo.pdf",
			FilePath:    "/uploads/curriculos/bruno_curriculo.pdf",
		},
		{
			CandidateID: carla,
			Content:     "Carla Oliveira - Gerente de Projetos\nExperiência: 7 anos em gestão de projetos\nHabilidades: Scrum, Agile, Jira, Liderança\nFormação: Administração - UFMG",
			FileName:    "carla_curriculo.pdf",
			FilePath:    "/uploads/curriculos/carla_curriculo.pdf",
		},
	}
}

// seedEntries encodes fixed demo items, which always marshal.
func seedEntries[T any](items ...T) models.Entries {
	entries, err := models.EntriesOf(items...)
	if err != nil {
		panic(err)
	}
	return entries
}
