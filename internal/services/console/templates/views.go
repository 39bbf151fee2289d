package templates

// LoginView renders the sign-in form.
type LoginView struct {
	Ctx      PageContext
	Identity string
	Error    string
}

// KPI is one dashboard stat card.
type KPI struct {
	Label string
	Value string
}

// DashboardView renders the overview page.
type DashboardView struct {
	Ctx          PageContext
	LoadedAt     string
	KPIs         []KPI
	StatusCounts []KPI
	BucketCounts []KPI
	OverviewNote string
	PaymentsNote string
	Message      string
	MessageIsErr bool
}

// Option is one entry of a filter select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// UserRow renders one account.
type UserRow struct {
	ID           int64
	Email        string
	Username     string
	Role         string
	RoleLabel    string
	RoleOptions  []Option
	TempPassword string
	RolePath     string
	DeletePath   string
	ResetPath    string
}

// UsersView renders the accounts page.
type UsersView struct {
	Ctx          PageContext
	Rows         []UserRow
	RoleOptions  []Option
	Text         string
	Message      string
	MessageIsErr bool
}

// SubmissionRow renders one entry of the moderation queue.
type SubmissionRow struct {
	ID           int64
	AppSlug      string
	Version      string
	Platform     string
	Channel      string
	Status       string
	StatusLabel  string
	SLA          string
	SLALabel     string
	Age          string
	Note         string
	Selected     bool
	Pending      bool
	TogglePath   string
	ApprovePath  string
	RejectPath   string
	ManifestPath string
	FilesPath    string
}

// SubmissionSection groups queue rows by status for section-scoped
// selection.
type SubmissionSection struct {
	Status     string
	Label      string
	Rows       []SubmissionRow
	SelectPath string
	ClearPath  string
}

// SubmissionsView renders the moderation queue page.
type SubmissionsView struct {
	Ctx             PageContext
	Sections        []SubmissionSection
	StatusOptions   []Option
	PlatformOptions []Option
	ChannelOptions  []Option
	SLAOptions      []Option
	Text            string
	SelectedCount   int
	Message         string
	MessageIsErr    bool
	Manifest        *ManifestView
	Files           *FilesView
}

// ManifestView renders one submission's build manifest panel.
type ManifestView struct {
	Ctx          PageContext
	SubmissionID int64
	App          string
	Version      string
	Platform     string
	Channel      string
	TotalSize    string
	Files        []ManifestFileRow
}

// ManifestFileRow is one manifest entry.
type ManifestFileRow struct {
	Path string
	Size string
}

// FileRow renders one build file with its latest verification result.
type FileRow struct {
	Path         string
	Size         string
	Checked      bool
	OK           bool
	ResultLabel  string
	Expected     string
	Error        string
	DownloadPath string
	VerifyPath   string
}

// FilesView renders one submission's file panel.
type FilesView struct {
	Ctx             PageContext
	SubmissionID    int64
	Rows            []FileRow
	Progress        string
	ZipPath         string
	VerifyBatchPath string
	ProgressWSPath  string
	Message         string
	MessageIsErr    bool
}

// AppRow renders one catalog entry.
type AppRow struct {
	ID          int64
	Slug        string
	Title       string
	Price       string
	Sale        string
	Description string
}

// AppsView renders the public catalog page.
type AppsView struct {
	Ctx          PageContext
	Rows         []AppRow
	PriceOptions []Option
	Text         string
	Message      string
	MessageIsErr bool
}

// PaymentRow renders one dev-upgrade payment.
type PaymentRow struct {
	ID       int64
	UserID   int64
	Email    string
	Amount   string
	Currency string
	Status   string
	Created  string
}

// PaymentsView renders the dev-upgrade payments page.
type PaymentsView struct {
	Ctx          PageContext
	Rows         []PaymentRow
	Note         string
	Message      string
	MessageIsErr bool
}
