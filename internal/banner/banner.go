package banner

// Banner is one homepage hero slot.
type Banner struct {
	ID           int    `json:"bannerId"`
	Title        string `json:"title"`
	MobileImage  string `json:"mobileImage"`
	DesktopImage string `json:"desktopImage"`
	Link         string `json:"link"`
	IsActive     bool   `json:"isActive"`
	Ord          int    `json:"ord"`
}
