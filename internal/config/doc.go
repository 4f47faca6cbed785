// Package config holds crawl configuration and its validation.
package config
