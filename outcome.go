package main

type Status string

const (
	StatusSuccess         Status = "success"
	StatusSkippedExisting Status = "skipped_existing"
	StatusDownloadFailed  Status = "download_failed"
	StatusUploadFailed    Status = "upload_failed"
	StatusError           Status = "error"
)

// Outcome is the recorded result for one source URL. The JSON field names are
// read by the storefront when it rewrites image links.
type Outcome struct {
	Status         Status `json:"status"`
	DestinationURL string `json:"firebase_url,omitempty"`
	StoragePath    string `json:"storage_path,omitempty"`
	Filename       string `json:"filename,omitempty"`
	Error          string `json:"error,omitempty"`
}

func (o Outcome) failed() bool {
	return o.Status != StatusSuccess && o.Status != StatusSkippedExisting
}

// Outcomes maps each original URL to its outcome.
type Outcomes map[string]Outcome

type tally struct {
	total          int
	success        int
	skipped        int
	downloadFailed int
	uploadFailed   int
	errors         int
}

func (o Outcomes) tally() tally {
	t := tally{total: len(o)}
	for _, outcome := range o {
		switch outcome.Status {
		case StatusSuccess:
			t.success++
		case StatusSkippedExisting:
			t.skipped++
		case StatusDownloadFailed:
			t.downloadFailed++
		case StatusUploadFailed:
			t.uploadFailed++
		case StatusError:
			t.errors++
		}
	}
	return t
}
