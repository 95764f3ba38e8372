package businesscentral

import (
	"context"
	"net/http"
)

// Item attributes and record links are not exposed as pages. A companion
// extension publishes them as unbound codeunit actions at the service root,
// scoped by the company query parameter.
const (
	actionGetItemAttributes    = "ItemAttributes_GetItemAttributes"
	actionGetAllItemAttributes = "ItemAttributes_GetAllItemAttributes"
	actionSetItemAttribute     = "ItemAttributes_SetItemAttribute"
	actionGetLinks             = "ItemRecordLinks_GetLinks"
	actionGetAllLinks          = "ItemRecordLinks_GetAllLinks"
	actionSetLink              = "ItemRecordLinks_SetLink"
)

type itemNumberBody struct {
	ItemNumber string `json:"itemNumber"`
}

type setAttributeBody struct {
	ItemNumber     string `json:"itemNumber"`
	AttributeName  string `json:"attributeName"`
	AttributeValue string `json:"attributeValue"`
}

type setLinkBody struct {
	ItemNumber  string `json:"itemNumber"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

func (c *Client) action(name string) Path {
	return Root().Collection(name).Param("company", c.config.Company)
}

// callEnvelope posts body to a codeunit action and unwraps the string envelope.
// A 404 is returned as an empty list when tolerateMissing is set.
func callEnvelope[T any](ctx context.Context, c *Client, action string, body any, tolerateMissing bool) ([]T, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, c.action(action), "", body)
	if err != nil {
		return nil, err
	}
	resp, err := c.exec.DoOK(req)
	if err != nil {
		if tolerateMissing && IsNotFound(err) {
			return []T{}, nil
		}
		return nil, err
	}
	return decodeEnvelope[T](resp.Body)
}

// ItemAttributes returns the attribute values of one item
func (c *Client) ItemAttributes(ctx context.Context, number string) ([]Attribute, error) {
	return callEnvelope[Attribute](ctx, c, actionGetItemAttributes, itemNumberBody{ItemNumber: number}, true)
}

// AllItemAttributes returns the attribute values of every item
func (c *Client) AllItemAttributes(ctx context.Context) ([]Attribute, error) {
	return callEnvelope[Attribute](ctx, c, actionGetAllItemAttributes, struct{}{}, false)
}

// SetItemAttribute writes one attribute value of an item
func (c *Client) SetItemAttribute(ctx context.Context, number, name, value string) error {
	body := setAttributeBody{ItemNumber: number, AttributeName: name, AttributeValue: value}
	return c.sendNoContent(ctx, http.MethodPost, c.action(actionSetItemAttribute), "", body)
}

// ItemLinks returns the record links of one item
func (c *Client) ItemLinks(ctx context.Context, number string) ([]Link, error) {
	return callEnvelope[Link](ctx, c, actionGetLinks, itemNumberBody{ItemNumber: number}, true)
}

// AllItemLinks returns the record links of every item
func (c *Client) AllItemLinks(ctx context.Context) ([]Link, error) {
	return callEnvelope[Link](ctx, c, actionGetAllLinks, struct{}{}, false)
}

// SetItemLink creates or replaces the record link with the given description
func (c *Client) SetItemLink(ctx context.Context, number, description, url string) error {
	body := setLinkBody{ItemNumber: number, URL: url, Description: description}
	return c.sendNoContent(ctx, http.MethodPost, c.action(actionSetLink), "", body)
}
