// Package garbage removes the packages a run fetched onto the local volume
package garbage
