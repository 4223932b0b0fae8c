// Package vision はGoogle Cloud Vision APIを使用したラベル検出クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"cookwhat/internal/feature/ingredientscan/domain/entity"
	"cookwhat/internal/feature/ingredientscan/usecase"
)

// maxLabels は1画像あたりに要求するラベル数の上限です。
const maxLabels = 30

// VisionLabelDetector はGoogle Cloud Vision APIを使用してラベルを検出します。
type VisionLabelDetector struct {
	client *gvision.ImageAnnotatorClient
}

// VisionLabelDetectorがLabelDetectorを実装していることをコンパイル時に検証します。
var _ usecase.LabelDetector = (*VisionLabelDetector)(nil)

// NewVisionLabelDetector はADCを使用してVisionLabelDetectorの新しいインスタンスを生成します。
func NewVisionLabelDetector(ctx context.Context) (*VisionLabelDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionLabelDetector{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionLabelDetector) Close() error {
	return v.client.Close()
}

// DetectLabels は画像バイト列からラベルを検出します。
func (v *VisionLabelDetector) DetectLabels(ctx context.Context, imageData []byte) ([]entity.DetectedLabel, error) {
	resp, err := v.client.BatchAnnotateImages(ctx, labelRequest(imageData))
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}
	return toLabels(resp)
}

// labelRequest は1画像分のラベル検出リクエストを組み立てます。
func labelRequest(imageData []byte) *visionpb.BatchAnnotateImagesRequest {
	return &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: maxLabels},
				},
			},
		},
	}
}

// toLabels はレスポンスの先頭画像のラベルをドメインモデルに変換します。
// 画像単位のエラーはそのままエラーとして返します。
func toLabels(resp *visionpb.BatchAnnotateImagesResponse) ([]entity.DetectedLabel, error) {
	if resp == nil || len(resp.Responses) == 0 {
		return nil, nil
	}
	first := resp.Responses[0]
	if first.Error != nil {
		return nil, fmt.Errorf("vision API error: %s", first.Error.Message)
	}

	labels := make([]entity.DetectedLabel, 0, len(first.LabelAnnotations))
	for _, l := range first.LabelAnnotations {
		labels = append(labels, entity.DetectedLabel{
			Name:       l.Description,
			Confidence: l.Score,
		})
	}
	return labels, nil
}
