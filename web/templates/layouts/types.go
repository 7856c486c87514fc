package layouts

// RoleOption is one entry of the role selector.
type RoleOption struct {
	Value    string
	Label    string
	Selected bool
}

// AppLayoutData is passed to the layout templates to configure the page shell.
type AppLayoutData struct {
	Title     string
	ActiveNav string // "financial" or "clinical"
	Actor     string
	Role      string
	RoleLabel string
	Roles     []RoleOption
	// ReturnPath is where the role selector sends the browser after switching.
	ReturnPath string
	FlashMsg   string
	FlashKind  string // "success", "error", "warning", "info"
}
