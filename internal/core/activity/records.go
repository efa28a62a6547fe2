package activity

// RawRecord is one source record before normalization
// the set of variants is closed, only this package can add one
type RawRecord interface {
	source() Source
}

// ManualRecord is a user logged timeline row
type ManualRecord struct {
	ID          string
	VehicleID   string
	Title       string
	Description string
	EventType   string
	EventDate   string
	CostAmount  *float64
	ImageURLs   []string
	Metadata    map[string]any
}

// PhotoRecord groups photos captured on one day that are not attached to another event
type PhotoRecord struct {
	VehicleID string
	Date      string
	Count     int
	Title     string
}

// AuctionRecord is an auction lifecycle row with the comments already fetched for it
type AuctionRecord struct {
	ID            string
	Platform      string
	Outcome       string
	StartDate     string
	EndDate       string
	HighBid       *float64
	WinningBid    *float64
	TotalBids     int
	CommentsCount int
	LotNumber     string
	SellerName    string
	WinningBidder string
	URL           string
	Comments      []AuctionComment
}

// AuctionComment is one comment or bid on an auction
type AuctionComment struct {
	PostedAt     string
	CommentType  string
	BidAmount    *float64
	IsLeadingBid bool
}

// ListingRecord is a listing on an auction platform, future or past
type ListingRecord struct {
	ID            string
	Platform      string
	StartDate     string
	EndDate       string
	ListingStatus string
	SaleDate      string
	LotNumber     string
	EstimateLow   *float64
	EstimateHigh  *float64
	Location      string
	URL           string
}

func (ManualRecord) source() Source  { return SourceManual }
func (PhotoRecord) source() Source   { return SourcePhotos }
func (AuctionRecord) source() Source { return SourceAuction }
func (ListingRecord) source() Source { return SourceListing }

// PhotoRow is a single photo timestamp row
type PhotoRow struct {
	ID        string
	TakenAt   string
	CreatedAt string
	EventID   string // set when the photo is attached to a timeline event
}

// When returns the capture time, falling back to the upload time
func (p PhotoRow) When() string {
	if p.TakenAt != "" {
		return p.TakenAt
	}
	return p.CreatedAt
}
