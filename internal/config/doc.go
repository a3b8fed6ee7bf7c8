// Package config provides configuration parsing for vnode tooling.
//
// The configuration is stored in vnode.json next to the scenes it drives.
// This package handles loading, saving, defaulting and validating it.
//
// # Configuration File Structure
//
//	{
//	  "keyPolicy": "positional",
//	  "log": {
//	    "level": "info"
//	  },
//	  "metrics": {
//	    "namespace": "vnode"
//	  },
//	  "serve": {
//	    "host": "localhost",
//	    "port": 7070
//	  },
//	  "snapshots": {
//	    "dir": "snapshots",
//	    "s3": {
//	      "bucket": "render-snapshots",
//	      "region": "us-east-1",
//	      "prefix": "ci/"
//	    }
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Policy:", cfg.KeyPolicy)
package config
