// portfolio generates the gallery manifests of a portfolio site.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/alerego/portfolio/pkg/manage"
	"github.com/alerego/portfolio/pkg/portfolio"
)

var (
	configPath = flag.String("config", "", "path to an optional YAML config file")
	root       = flag.String("root", "", "site root containing the images directory (overrides config)")
	listen     = flag.Bool("listen", false, "serve content via HTTP")
	addr       = flag.String("addr", "localhost:12800", "host:port to bind to in listen mode")
	watchFlag  = flag.Bool("watch", false, "watch the images directory and regenerate on change")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	c, err := portfolio.LoadConfig(*configPath)
	if err != nil {
		klog.Exitf("config: %v", err)
	}
	if *root != "" {
		c.Root = *root
	}

	s := manage.New(c)
	if _, err := s.Regenerate(); err != nil {
		if errors.Is(err, portfolio.ErrNoImagesDir) {
			klog.Exitf("%v", err)
		}
		klog.Errorf("generate: %v", err)
	}

	var wg sync.WaitGroup
	if *watchFlag {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := watch(c, s); err != nil {
				klog.Exitf("watch failed: %v", err)
			}
		}()
	}

	if *listen {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serve(s, *addr)
		}()
	}

	wg.Wait()
}

// serve serves the site root and management endpoints via HTTP
func serve(s *manage.Server, addr string) {
	klog.Infof("Listening on %s...", addr)
	if err := http.ListenAndServe(addr, s.Handler()); err != nil {
		klog.Exitf("listen failed: %v", err)
	}
}

// watchDirs returns the folders whose contents feed the manifests.
func watchDirs(imagesDir string) ([]string, error) {
	dirs := []string{imagesDir}
	cats, err := filepath.Glob(filepath.Join(imagesDir, "*", "full"))
	if err != nil {
		return nil, err
	}
	sets, err := filepath.Glob(filepath.Join(imagesDir, "*", "featured", "*"))
	if err != nil {
		return nil, err
	}
	setFull, err := filepath.Glob(filepath.Join(imagesDir, "*", "featured", "*", "full"))
	if err != nil {
		return nil, err
	}
	for _, d := range slices.Concat(cats, sets, setFull) {
		dirs = append(dirs, d, filepath.Dir(d))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}

// watch watches the images tree for changes and regenerates
func watch(c *portfolio.Config, s *manage.Server) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	dirs, err := watchDirs(c.ImagesDir())
	if err != nil {
		return fmt.Errorf("glob: %w", err)
	}

	klog.Infof("watching %d dirs ...", len(dirs))
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			klog.Warningf("unable to watch %s: %v", d, err)
		}
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) == portfolio.ManifestName {
				continue
			}
			klog.V(1).Infof("event: %s", event)
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				if _, err := s.Regenerate(); err != nil {
					klog.Errorf("generate: %v", err)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}
