package lifecycle

// Presentation is the single display mapping for a status.
type Presentation struct {
	Status   Status `json:"status"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	Terminal bool   `json:"terminal"`
}

var presentations = map[Status]Presentation{
	StatusSubmitted:     {Status: StatusSubmitted, Label: "Submitted", Color: "#2196F3", Icon: "send"},
	StatusReviewing:     {Status: StatusReviewing, Label: "Under Review", Color: "#03A9F4", Icon: "search"},
	StatusAssigned:      {Status: StatusAssigned, Label: "Assigned", Color: "#673AB7", Icon: "person"},
	StatusInProgress:    {Status: StatusInProgress, Label: "In Progress", Color: "#FF9800", Icon: "build"},
	StatusPendingParts:  {Status: StatusPendingParts, Label: "Pending Parts", Color: "#FFC107", Icon: "inventory"},
	StatusPendingVendor: {Status: StatusPendingVendor, Label: "Pending Vendor", Color: "#FFC107", Icon: "storefront"},
	StatusCompleted:     {Status: StatusCompleted, Label: "Completed", Color: "#4CAF50", Icon: "check_circle", Terminal: true},
	StatusClosed:        {Status: StatusClosed, Label: "Closed", Color: "#9E9E9E", Icon: "lock", Terminal: true},
	StatusReopened:      {Status: StatusReopened, Label: "Reopened", Color: "#F44336", Icon: "replay"},
	StatusCancelled:     {Status: StatusCancelled, Label: "Cancelled", Color: "#757575", Icon: "cancel", Terminal: true},
}

// Describe returns the presentation for s. Unknown statuses get a neutral entry labelled with the raw value.
func Describe(s Status) Presentation {
	if p, ok := presentations[s]; ok {
		return p
	}

	return Presentation{Status: s, Label: string(s), Color: "#9E9E9E", Icon: "help"}
}

// Catalog returns every presentation in lifecycle order.
func Catalog() []Presentation {
	res := make([]Presentation, len(Statuses))
	for i, s := range Statuses {
		res[i] = presentations[s]
	}

	return res
}
