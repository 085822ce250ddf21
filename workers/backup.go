package workers

import (
	"bytes"
	"log"
	"strings"
	"sync"

	"github.com/camden-git/inspectsysbackend/media"
	"github.com/camden-git/inspectsysbackend/models"
)

// BackupJob mirrors one saved photo payload to local disk storage
type BackupJob struct {
	ProjectID string
	PhotoID   string
	URI       string
}

// BackupWorker is a channel-fed worker pool that writes photo payloads
// through the media store. Backups are best-effort: a full queue or a decode
// failure drops the job with a log line and never blocks the save path
type BackupWorker struct {
	JobQueue chan BackupJob
	Store    media.Store
	Wg       sync.WaitGroup
	StopChan chan struct{}
	Pending  map[string]bool
	Mutex    sync.Mutex
}

// NewBackupWorker starts the pool
func NewBackupWorker(store media.Store, queueSize, numWorkers int) *BackupWorker {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	bw := &BackupWorker{
		JobQueue: make(chan BackupJob, queueSize),
		Store:    store,
		StopChan: make(chan struct{}),
		Pending:  make(map[string]bool),
	}

	bw.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go bw.worker(i)
	}
	log.Printf("started %d photo backup worker(s) with queue size %d", numWorkers, queueSize)

	return bw
}

func (bw *BackupWorker) worker(id int) {
	defer bw.Wg.Done()
	log.Printf("backup worker %d started", id)
	for {
		select {
		case job, ok := <-bw.JobQueue:
			if !ok {
				log.Printf("backup worker %d stopping: job queue closed", id)
				return
			}
			bw.processJob(job)
			bw.Mutex.Lock()
			delete(bw.Pending, job.ProjectID+"/"+job.PhotoID)
			bw.Mutex.Unlock()

		case <-bw.StopChan:
			log.Printf("backup worker %d stopping: stop signal received", id)
			return
		}
	}
}

func (bw *BackupWorker) processJob(job BackupJob) {
	raw, mimeType, err := media.DecodeDataURI(job.URI)
	if err != nil {
		log.Printf("ERROR decoding photo %s payload for backup: %v", job.PhotoID, err)
		return
	}

	filename := job.PhotoID + extensionForMime(mimeType)
	savedPath, err := bw.Store.Save(media.AssetTypePhotoBackup, job.ProjectID, filename, bytes.NewReader(raw))
	if err != nil {
		log.Printf("ERROR backing up photo %s for project %s: %v", job.PhotoID, job.ProjectID, err)
		return
	}
	log.Printf("backed up photo %s to %s", job.PhotoID, savedPath)
}

// QueuePhoto enqueues a backup for a saved photo if one is not already
// pending. Returns false when skipped or the queue is full
func (bw *BackupWorker) QueuePhoto(photo models.Photo) bool {
	pendingKey := photo.ProjectID + "/" + photo.ID

	bw.Mutex.Lock()
	if bw.Pending[pendingKey] {
		bw.Mutex.Unlock()
		return false
	}
	bw.Pending[pendingKey] = true
	bw.Mutex.Unlock()

	job := BackupJob{ProjectID: photo.ProjectID, PhotoID: photo.ID, URI: photo.URI}
	select {
	case bw.JobQueue <- job:
		return true
	default:
		log.Printf("WARNING: photo backup queue full, dropping backup for %s", pendingKey)
		bw.Mutex.Lock()
		delete(bw.Pending, pendingKey)
		bw.Mutex.Unlock()
		return false
	}
}

// RemoveBackup deletes the mirrored copy of a removed photo. The backup's
// extension depends on the payload's MIME type, which is gone once the record
// is deleted, so every candidate extension is tried; missing files are fine
func (bw *BackupWorker) RemoveBackup(projectID, photoID string) {
	for _, ext := range []string{".jpg", ".png", ".gif", ".webp"} {
		if err := bw.Store.Delete(media.AssetTypePhotoBackup, projectID, photoID+ext); err != nil {
			log.Printf("ERROR removing backup %s%s for project %s: %v", photoID, ext, projectID, err)
		}
	}
}

// Stop drains nothing; in-flight jobs finish, queued jobs are abandoned
func (bw *BackupWorker) Stop() {
	log.Println("stopping photo backup workers...")
	close(bw.StopChan)
	bw.Wg.Wait()
	log.Println("all photo backup workers stopped")
}

func extensionForMime(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
