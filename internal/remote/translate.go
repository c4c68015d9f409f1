// SPDX-License-Identifier: EPL-2.0

package remote

import "context"

// TranslateClient calls the text translation endpoint.
type TranslateClient struct {
	*client
}

func NewTranslateClient(cfg Config, opts ...Option) (*TranslateClient, error) {
	c, err := newClient("translate", cfg, opts)
	if err != nil {
		return nil, err
	}
	return &TranslateClient{client: c}, nil
}

type translateRequest struct {
	Input              string `json:"input"`
	SourceLanguageCode string `json:"source_language_code"`
	TargetLanguageCode string `json:"target_language_code"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

func (c *TranslateClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	var out translateResponse

	err := c.post(ctx, "/translate", jsonBody(translateRequest{
		Input:              text,
		SourceLanguageCode: source,
		TargetLanguageCode: target,
	}), &out)
	if err != nil {
		return "", err
	}

	return out.TranslatedText, nil
}
