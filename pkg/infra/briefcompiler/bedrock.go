package briefcompiler

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/sirupsen/logrus"

	"github.com/arbetsytan/arbetsytan/pkg/infra/bedrock"
)

type bedrockProvider struct {
	client  bedrock.Client
	modelID string
	logger  *logrus.Logger
}

func NewBedrockProvider(client bedrock.Client, modelID string, logger *logrus.Logger) Provider {
	return &bedrockProvider{
		client:  client,
		modelID: modelID,
		logger:  logger,
	}
}

func (p *bedrockProvider) Name() string {
	return "bedrock"
}

func (p *bedrockProvider) Compile(ctx context.Context, prompt string) (string, error) {
	output, err := p.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(p.modelID),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: prompt},
				},
			},
		},
	})
	if err != nil {
		p.logger.WithField("provider", p.Name()).WithError(err).Error("brief compilation failed")
		return "", fmt.Errorf("bedrock converse: %w", err)
	}

	message, ok := output.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("unexpected bedrock output type %T", output.Output)
	}
	for _, block := range message.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			return text.Value, nil
		}
	}
	return "", fmt.Errorf("bedrock response contained no text block")
}
