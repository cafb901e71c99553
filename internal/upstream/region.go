package upstream

import (
	"context"
	"net/url"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// SidoList returns the top level of the administrative region cascade.
func (c *Client) SidoList(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, "", "/law-dong/sido", "/law-dong/sido", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SigunguList returns the districts of one 시/도.
func (c *Client) SigunguList(ctx context.Context, sido string) ([]string, error) {
	q := url.Values{"sido": {sido}}
	var names []string
	if err := c.getJSON(ctx, "", "/law-dong/sigungu?"+q.Encode(), "/law-dong/sigungu", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// DongList returns the neighborhoods of one 시/군/구.
func (c *Client) DongList(ctx context.Context, sido, sigungu string) ([]string, error) {
	q := url.Values{"sido": {sido}, "sigungu": {sigungu}}
	var names []string
	if err := c.getJSON(ctx, "", "/law-dong/dong?"+q.Encode(), "/law-dong/dong", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// ResolveLawDong maps a fully selected cascade to its law-dong record.
func (c *Client) ResolveLawDong(ctx context.Context, sido, sigungu, dong string) (*domain.LawDong, error) {
	q := url.Values{"sido": {sido}, "sigungu": {sigungu}, "dong": {dong}}
	var ld domain.LawDong
	if err := c.getJSON(ctx, "", "/law-dong/resolve?"+q.Encode(), "/law-dong/resolve", &ld); err != nil {
		return nil, err
	}
	return &ld, nil
}

var _ ports.RegionAPI = (*Client)(nil)
