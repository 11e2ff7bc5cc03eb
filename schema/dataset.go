package schema

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownDataset = errors.New("unknown dataset")

// Dataset names one of the two independent record collections.
type Dataset string

const (
	Followup Dataset = "followup"
	Land     Dataset = "land"
)

// Datasets lists every dataset in display order.
var Datasets = []Dataset{Followup, Land}

type datasetInfo struct {
	storageKey string
	sheet      string
	title      string
	tab        string
	statusKey  string
}

var datasets = map[Dataset]datasetInfo{
	Followup: {
		storageKey: "re_full_followup_records_v1",
		sheet:      "FollowUp",
		title:      "Follow-Up",
		tab:        "Follow-Ups",
		statusKey:  "currentStatus",
	},
	Land: {
		storageKey: "re_full_land_records_v1",
		sheet:      "Land",
		title:      "Land Record",
		tab:        "Land Records",
		statusKey:  "status",
	},
}

func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := datasets[d]; !ok {
		return "", errors.Wrapf(ErrUnknownDataset, "%q (expected followup or land)", s)
	}

	return d, nil
}

func (d Dataset) Valid() bool {
	_, ok := datasets[d]
	return ok
}

func (d Dataset) String() string {
	return string(d)
}

// StorageKey is the durable storage slot holding the dataset.
func (d Dataset) StorageKey() string {
	return datasets[d].storageKey
}

// SheetName is the worksheet name used by spreadsheet exports.
func (d Dataset) SheetName() string {
	return datasets[d].sheet
}

// Title is the singular record name, e.g. "Land Record".
func (d Dataset) Title() string {
	return datasets[d].title
}

// Tab is the plural label shown on the dataset tab.
func (d Dataset) Tab() string {
	return datasets[d].tab
}

// StatusKey is the field holding the record status.
func (d Dataset) StatusKey() string {
	return datasets[d].statusKey
}
