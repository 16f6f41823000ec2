package fs

import "time"

var timeNow = time.Now
