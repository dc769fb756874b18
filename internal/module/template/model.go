package template

import (
	"time"

	"github.com/lib/pq"
)

// Category classifies templates and best practices by project domain.
type Category string

const (
	CategoryWebDevelopment   Category = "WEB_DEVELOPMENT"
	CategoryMobileApp        Category = "MOBILE_APP"
	CategoryDataAnalysis     Category = "DATA_ANALYSIS"
	CategoryResearch         Category = "RESEARCH"
	CategoryMarketing        Category = "MARKETING"
	CategoryDesign           Category = "DESIGN"
	CategoryInfrastructure   Category = "INFRASTRUCTURE"
	CategoryAutomation       Category = "AUTOMATION"
	CategoryContentCreation  Category = "CONTENT_CREATION"
	CategoryBusinessStrategy Category = "BUSINESS_STRATEGY"
	CategoryGeneral          Category = "GENERAL"
)

// AllCategories lists every template category.
var AllCategories = []Category{
	CategoryWebDevelopment,
	CategoryMobileApp,
	CategoryDataAnalysis,
	CategoryResearch,
	CategoryMarketing,
	CategoryDesign,
	CategoryInfrastructure,
	CategoryAutomation,
	CategoryContentCreation,
	CategoryBusinessStrategy,
	CategoryGeneral,
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Type distinguishes what a template's content fills in.
type Type string

const (
	TypeBrief   Type = "BRIEF"
	TypeDoD     Type = "DOD"
	TypeProject Type = "PROJECT"
)

// IsValid reports whether t is a known template type.
func (t Type) IsValid() bool {
	return t == TypeBrief || t == TypeDoD || t == TypeProject
}

// Template is a reusable content skeleton for briefs, DoDs or whole
// projects. System templates ship with the service; generated ones are
// extracted from projects that finished well.
type Template struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null;index"`
	Description  string         `json:"description"`
	Category     Category       `json:"category" gorm:"type:varchar(30);default:'GENERAL';index"`
	TemplateType Type           `json:"template_type" gorm:"type:varchar(20);not null"`
	Content      map[string]any `json:"content" gorm:"type:jsonb;serializer:json"`

	IsSystemTemplate bool  `json:"is_system_template" gorm:"default:false"`
	IsGenerated      bool  `json:"is_generated" gorm:"default:false"`
	SourceProjectID  *uint `json:"source_project_id" gorm:"index"`

	UsageCount  int            `json:"usage_count" gorm:"default:0"`
	SuccessRate *float64       `json:"success_rate"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for Template.
func (Template) TableName() string {
	return "templates"
}

// Usage records one application of a template, with optional feedback.
type Usage struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	TemplateID uint   `json:"template_id" gorm:"index;not null"`
	ProjectID  *uint  `json:"project_id"`
	TaskID     *uint  `json:"task_id"`
	UsedFor    string `json:"used_for" gorm:"not null"`

	WasHelpful    *bool   `json:"was_helpful"`
	FeedbackNotes *string `json:"feedback_notes"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for Usage.
func (Usage) TableName() string {
	return "template_usages"
}

// BestPractice is curated guidance attached to a category.
type BestPractice struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Title       string   `json:"title" gorm:"not null"`
	Description string   `json:"description" gorm:"not null"`
	Category    Category `json:"category" gorm:"type:varchar(30);not null;index"`

	Principles pq.StringArray `json:"principles" gorm:"type:text[]"`
	DoList     pq.StringArray `json:"do_list" gorm:"type:text[]"`
	DontList   pq.StringArray `json:"dont_list" gorm:"type:text[]"`
	Examples   pq.StringArray `json:"examples" gorm:"type:text[]"`

	Source          string         `json:"source" gorm:"default:'internal'"`
	ConfidenceScore float64        `json:"confidence_score" gorm:"default:0.8"`
	Tags            pq.StringArray `json:"tags" gorm:"type:text[]"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for BestPractice.
func (BestPractice) TableName() string {
	return "best_practices"
}
