package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User represents an authenticated app user.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,unique,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Role         string    `bun:"role,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Session is used by middleware and auth handlers.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID                string         `bun:"id,pk"`
	UserID            int64          `bun:"user_id,notnull"`
	User              User           `bun:"rel:belongs-to,join:user_id=id"`
	UserRoles         []string       `bun:"-"`
	ScreenPermissions map[string]int `bun:"-"`
	ExpiresAt         time.Time      `bun:"expires_at,notnull"`
	CreatedAt         time.Time      `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time      `bun:"updated_at,notnull,default:current_timestamp"`
}

// Expired returns true when the session expiry time has passed.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Configuration is a stored packaging hierarchy definition. Hierarchy
// counts, GS1 identity and trading partners live here; serial pools live
// in serial_numbers.
type Configuration struct {
	bun.BaseModel `bun:"table:configurations,alias:c"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull,unique"`

	CompanyPrefix     string `bun:"company_prefix,notnull"`
	ItemsPerCase      int    `bun:"items_per_case,notnull,default:0"`
	InnerCasesEnabled bool   `bun:"inner_cases_enabled,notnull,default:false"`
	ItemsPerInnerCase int    `bun:"items_per_inner_case,notnull,default:0"`
	InnerCasesPerCase int    `bun:"inner_cases_per_case,notnull,default:0"`
	CasesPerSSCC      int    `bun:"cases_per_sscc,notnull,default:0"`
	NumberOfSSCC      int    `bun:"number_of_sscc,notnull,default:1"`

	ItemIndicatorDigit      string `bun:"item_indicator_digit,notnull"`
	ItemProductCode         string `bun:"item_product_code,notnull"`
	CaseIndicatorDigit      string `bun:"case_indicator_digit"`
	CaseProductCode         string `bun:"case_product_code"`
	InnerCaseIndicatorDigit string `bun:"inner_case_indicator_digit"`
	InnerCaseProductCode    string `bun:"inner_case_product_code"`
	SSCCIndicatorDigit      string `bun:"sscc_indicator_digit,notnull"`

	PackageNDC            string `bun:"package_ndc"`
	RegulatedProductName  string `bun:"regulated_product_name"`
	ManufacturerName      string `bun:"manufacturer_name"`
	DosageFormType        string `bun:"dosage_form_type"`
	StrengthDescription   string `bun:"strength_description"`
	NetContentDescription string `bun:"net_content_description"`
	LotNumber             string `bun:"lot_number"`
	ExpirationDate        string `bun:"expiration_date"`

	SenderName          string `bun:"sender_name"`
	SenderCompanyPrefix string `bun:"sender_company_prefix"`
	SenderGLN           string `bun:"sender_gln,notnull"`
	SenderSGLN          string `bun:"sender_sgln"`
	SenderStreet        string `bun:"sender_street"`
	SenderCity          string `bun:"sender_city"`
	SenderState         string `bun:"sender_state"`
	SenderPostalCode    string `bun:"sender_postal_code"`
	SenderCountryCode   string `bun:"sender_country_code"`

	ReceiverName          string `bun:"receiver_name"`
	ReceiverCompanyPrefix string `bun:"receiver_company_prefix"`
	ReceiverGLN           string `bun:"receiver_gln,notnull"`
	ReceiverSGLN          string `bun:"receiver_sgln"`
	ReceiverStreet        string `bun:"receiver_street"`
	ReceiverCity          string `bun:"receiver_city"`
	ReceiverState         string `bun:"receiver_state"`
	ReceiverPostalCode    string `bun:"receiver_postal_code"`
	ReceiverCountryCode   string `bun:"receiver_country_code"`

	ShipperSameAsSender  bool   `bun:"shipper_same_as_sender,notnull,default:true"`
	ShipperName          string `bun:"shipper_name"`
	ShipperCompanyPrefix string `bun:"shipper_company_prefix"`
	ShipperGLN           string `bun:"shipper_gln"`
	ShipperSGLN          string `bun:"shipper_sgln"`
	ShipperStreet        string `bun:"shipper_street"`
	ShipperCity          string `bun:"shipper_city"`
	ShipperState         string `bun:"shipper_state"`
	ShipperPostalCode    string `bun:"shipper_postal_code"`
	ShipperCountryCode   string `bun:"shipper_country_code"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// SerialNumber is one serial in a per-level, per-configuration pool.
// Seq preserves upload order; generation consumes serials in seq order.
type SerialNumber struct {
	bun.BaseModel `bun:"table:serial_numbers,alias:sn"`

	ID              int64     `bun:"id,pk,autoincrement"`
	ConfigurationID int64     `bun:"configuration_id,notnull"`
	Level           string    `bun:"level,notnull"`
	Seq             int64     `bun:"seq,notnull"`
	Serial          string    `bun:"serial,notnull"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// GenerationRun records one EPCIS document generation. Documents are not
// persisted, only their shape and destination filename.
type GenerationRun struct {
	bun.BaseModel `bun:"table:generation_runs,alias:gr"`

	ID              int64     `bun:"id,pk,autoincrement"`
	ConfigurationID int64     `bun:"configuration_id,notnull"`
	Filename        string    `bun:"filename,notnull"`
	SSCCCount       int       `bun:"sscc_count,notnull"`
	EventCount      int       `bun:"event_count,notnull"`
	ReadPoint       string    `bun:"read_point"`
	BizLocation     string    `bun:"biz_location"`
	DespatchAdvice  string    `bun:"despatch_advice"`
	CreatedByUserID int64     `bun:"created_by_user_id,notnull"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// AuditLog captures immutable change history for key operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     int64     `bun:"user_id,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
