package jobs

import "sort"

// JobPostingImageData pairs a job posting with the bytes of its image.
// A nil ImageData means the image is absent.
type JobPostingImageData struct {
	ObjectID  string
	ImageData []byte
}

// Less orders image data for deterministic sorting: absent images sort
// before present ones, present images compare by byte length only.
func (d JobPostingImageData) Less(other JobPostingImageData) bool {
	switch {
	case d.ImageData == nil:
		return other.ImageData != nil
	case other.ImageData == nil:
		return false
	default:
		return len(d.ImageData) < len(other.ImageData)
	}
}

// SortImageData stable-sorts items by Less
func SortImageData(items []JobPostingImageData) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Less(items[j])
	})
}
