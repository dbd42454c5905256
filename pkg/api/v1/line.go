package v1

// Line is one captured line of IRC traffic as it is persisted in the
// raw collection. Time is the receive time in seconds since the epoch.
type Line struct {
	Time int64  `bson:"time" json:"time"`
	Line string `bson:"line" json:"line"`
}
