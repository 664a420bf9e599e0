// Package mangahub implements providers.Scraper for mangahub.io series
// pages. The newest chapter is read from the chapter list with a CSS
// selector; when the page layout changes and the selector finds nothing,
// every chapter link of the series on the page is compared instead.
package mangahub
