// Package vision detects words with Google Cloud Vision document text
// detection.
package vision

import (
	"context"
	"fmt"
	"os"

	apiv1 "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"

	"github.com/lehigh-university-libraries/tablesep/internal/utils"
	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
	"github.com/lehigh-university-libraries/tablesep/pkg/providers"
)

type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// Provider implements the Google Cloud Vision provider
type Provider struct {
	newClient func(ctx context.Context) (annotator, error)
}

// New creates a new Vision provider using application default credentials
func New() *Provider {
	return &Provider{
		newClient: func(ctx context.Context) (annotator, error) {
			return apiv1.NewImageAnnotatorClient(ctx)
		},
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "vision"
}

// ValidateConfig validates the Vision configuration
func (p *Provider) ValidateConfig(config providers.Config) error {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable not set")
	}
	return nil
}

// DetectWords sends the page to Vision and returns its word boxes
func (p *Provider) DetectWords(ctx context.Context, config providers.Config, imagePath string) ([]hocr.WordBox, error) {
	content, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	client, err := p.newClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", utils.MaskSensitiveError(err))
	}
	defer client.Close()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: content},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				ImageContext: &visionpb.ImageContext{LanguageHints: config.Languages},
			},
		},
	}

	resp, err := client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", utils.MaskSensitiveError(err))
	}
	if len(resp.GetResponses()) == 0 {
		return nil, fmt.Errorf("vision returned no responses")
	}

	r := resp.GetResponses()[0]
	if msg := r.GetError().GetMessage(); msg != "" {
		return nil, fmt.Errorf("vision error: %s", utils.MaskSensitiveData(msg))
	}

	return hocr.ToWordBoxes(ToResponse(r.GetFullTextAnnotation())), nil
}

// ToResponse converts a Vision text annotation into the JSON form stored
// next to the page images
func ToResponse(annotation *visionpb.TextAnnotation) hocr.OCRResponse {
	if annotation == nil {
		return hocr.OCRResponse{Responses: []hocr.Response{{}}}
	}

	full := &hocr.FullTextAnnotation{Text: annotation.GetText()}
	for _, page := range annotation.GetPages() {
		p := hocr.Page{Width: int(page.GetWidth()), Height: int(page.GetHeight())}
		for _, block := range page.GetBlocks() {
			b := hocr.Block{
				BoundingBox: toPoly(block.GetBoundingBox()),
				BlockType:   block.GetBlockType().String(),
			}
			for _, paragraph := range block.GetParagraphs() {
				para := hocr.Paragraph{BoundingBox: toPoly(paragraph.GetBoundingBox())}
				for _, word := range paragraph.GetWords() {
					w := hocr.Word{BoundingBox: toPoly(word.GetBoundingBox())}
					for _, s := range word.GetSymbols() {
						w.Symbols = append(w.Symbols, hocr.Symbol{Text: s.GetText()})
					}
					para.Words = append(para.Words, w)
				}
				b.Paragraphs = append(b.Paragraphs, para)
			}
			p.Blocks = append(p.Blocks, b)
		}
		full.Pages = append(full.Pages, p)
	}

	return hocr.OCRResponse{Responses: []hocr.Response{{FullTextAnnotation: full}}}
}

func toPoly(poly *visionpb.BoundingPoly) hocr.BoundingPoly {
	var out hocr.BoundingPoly
	for _, v := range poly.GetVertices() {
		out.Vertices = append(out.Vertices, hocr.Vertex{X: int(v.GetX()), Y: int(v.GetY())})
	}
	return out
}
