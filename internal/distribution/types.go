package distribution

// User roles as reported by the distribution API.
const (
	RoleUser  = "user"
	RoleDev   = "dev"
	RoleAdmin = "admin"
)

// Submission moderation statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User is a platform account.
type User struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	AvatarURL          string `json:"avatar_url,omitempty"`
	ForcePasswordReset bool   `json:"force_password_reset,omitempty"`
}

// Submission is a dev-uploaded build awaiting moderation.
type Submission struct {
	ID        int64  `json:"id"`
	AppSlug   string `json:"app_slug"`
	Version   string `json:"version"`
	Platform  string `json:"platform"`
	Channel   string `json:"channel"`
	Status    string `json:"status"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// App is a published catalog entry.
type App struct {
	ID          int64   `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	SalePercent float64 `json:"sale_percent,omitempty"`
	CoverURL    string  `json:"cover_url,omitempty"`
}

// Payment records a dev-upgrade purchase.
type Payment struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Email     string  `json:"email,omitempty"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency,omitempty"`
	Status    string  `json:"status,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// Overview carries server-side KPI counts. Any section may be absent; the
// console falls back to local derivation for missing values.
type Overview struct {
	Users       *OverviewSection `json:"users,omitempty"`
	Apps        *OverviewSection `json:"apps,omitempty"`
	Submissions *OverviewSection `json:"submissions,omitempty"`
}

// OverviewSection is one KPI block: a total plus optional breakdowns keyed
// by status or SLA bucket.
type OverviewSection struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status,omitempty"`
	ByBucket map[string]int64 `json:"by_bucket,omitempty"`
}

// Manifest describes one submission's build artifact.
type Manifest struct {
	App       string         `json:"app"`
	Version   string         `json:"version"`
	Platform  string         `json:"platform"`
	Channel   string         `json:"channel"`
	Files     []ManifestFile `json:"files"`
	TotalSize int64          `json:"total_size"`
}

// ManifestFile is a single file entry within a manifest.
type ManifestFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// VerifyResult reports server-side checksum verification for one file.
// Error carries a per-file verification problem; it does not indicate that
// the verify call itself failed.
type VerifyResult struct {
	Path     string `json:"path"`
	ChunkOK  bool   `json:"chunk_ok"`
	FileOK   bool   `json:"file_ok"`
	Expected string `json:"expected,omitempty"`
	Error    string `json:"error,omitempty"`
}

// TokenPair is the bearer credential pair issued by the auth endpoints.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Credentials identify an account for login. Identity accepts an email
// address or a username; the backend decides.
type Credentials struct {
	Identity string
	Password string
}
