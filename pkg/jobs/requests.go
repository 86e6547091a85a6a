package jobs

import "github.com/Klingenstadt-Solingen/osca-jobs/pkg/parse"

// ElasticSearchFunction is the cloud function backing full text search
const ElasticSearchFunction = "elastic-search"

// ElasticSearchQuery is the JSON body of an elastic-search call
type ElasticSearchQuery struct {
	Index string `json:"index"`
	Query string `json:"query"`
}

// ImageDataRequest fetches the image file of one job posting
type ImageDataRequest struct {
	parse.FileRequest
	ObjectID string
}

// JobPostingRequest describes a query on the JobPosting class
func JobPostingRequest(baseURL string, headers, query map[string]string) parse.ClassRequest {
	return parse.ClassRequest{
		BaseURL:    baseURL,
		ClassName:  ParseClassName,
		Parameters: query,
		Headers:    headers,
	}
}

// JobPostingImageDataRequest describes the download of fileName+mimeType
// below baseURL for the posting objectID
func JobPostingImageDataRequest(objectID, baseURL, fileName, mimeType string) ImageDataRequest {
	return ImageDataRequest{
		FileRequest: parse.FileRequest{
			BaseURL:  baseURL,
			FileName: fileName,
			MimeType: mimeType,
		},
		ObjectID: objectID,
	}
}

// ElasticSearchRequest describes a call of the elastic-search cloud function
func ElasticSearchRequest(baseURL string, headers map[string]string, param ElasticSearchQuery) parse.FunctionRequest {
	return parse.FunctionRequest{
		BaseURL:      baseURL,
		FunctionName: ElasticSearchFunction,
		Parameters:   param,
		Headers:      headers,
	}
}
