// showcase prints the home page tiles for a deployed site or a local tree.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"time"

	"k8s.io/klog/v2"

	"github.com/alerego/portfolio/pkg/portfolio"
	"github.com/alerego/portfolio/pkg/showcase"
)

var (
	configPath = flag.String("config", "", "path to an optional YAML config file")
	imagesURL  = flag.String("url", "", "absolute URL of a deployed images folder; the local tree is read when empty")
	timeout    = flag.Duration("timeout", 30*time.Second, "timeout for fetching manifests")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	c, err := portfolio.LoadConfig(*configPath)
	if err != nil {
		klog.Exitf("config: %v", err)
	}

	var src showcase.Source = &showcase.DirSource{ImagesDir: c.ImagesDir()}
	if *imagesURL != "" {
		src = &showcase.HTTPSource{ImagesURL: *imagesURL, Client: &http.Client{Timeout: *timeout}}
	}

	is := showcase.Load(context.Background(), src, c.SiteURL, c.ShowcaseLimit)

	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	if err := e.Encode(is); err != nil {
		klog.Exitf("encode: %v", err)
	}
}
