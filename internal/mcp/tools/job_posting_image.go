package tools

import (
	"context"
	"fmt"
	"mime"

	"github.com/dustin/go-humanize"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

// JobPostingImageParams defines the arguments for the job_posting_image tool
type JobPostingImageParams struct {
	ObjectID string `json:"object_id" jsonschema:"Object id of the job posting"`
	BaseURL  string `json:"base_url" jsonschema:"Base URL the image file is stored below"`
	FileName string `json:"file_name" jsonschema:"Image file name without extension"`
	MimeType string `json:"mime_type" jsonschema:"File extension including the dot, e.g. .png"`
}

type jobPostingImageTool struct {
	jobs   JobsService
	logger *logging.Logger
}

// WithJobPostingImage registers the job_posting_image tool
func WithJobPostingImage(svc JobsService) Option {
	return func(reg *registry) {
		handler := jobPostingImageTool{jobs: svc, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "job_posting_image",
			Description: "Download the image of a job posting",
		}, handler.handle)
	}
}

func (t jobPostingImageTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobPostingImageParams) (*sdkmcp.CallToolResult, any, error) {
	t.logger.Debug("job_posting_image called", "object_id", params.ObjectID)

	data, _, err := jobs.Await(t.jobs.JobPostingImage(ctx, params.ObjectID, params.BaseURL, params.FileName, params.MimeType))
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	mimeType := mime.TypeByExtension(params.MimeType)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: fmt.Sprintf("image of %s (%s)", data.ObjectID, humanize.Bytes(uint64(len(data.ImageData))))},
			&sdkmcp.ImageContent{Data: data.ImageData, MIMEType: mimeType},
		},
	}, nil, nil
}
