package handler

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// HandleAPIGateway adapts Handle to an API Gateway REST proxy integration.
// It never returns an error: every failure is rendered as a JSON response.
func (h *Handler) HandleAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			h.log.Error("decode base64 body failed", "error", err)
			return toProxyResponse(h.internalError(errProcessRequest, fmt.Errorf("decode body: %w", err))), nil
		}
		body = decoded
	}

	resp := h.Handle(ctx, Request{
		Method: event.HTTPMethod,
		Path:   event.Path,
		Body:   body,
	})
	return toProxyResponse(resp), nil
}

func toProxyResponse(resp Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}
}
