/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package mesosres

// NewPersistentDisk builds the Disk info a persistent volume carries,
// following Mesos's DiskInfo conventions: a persistence id/
// principal pair and a container path that becomes the volume's
// SANDBOX_PATH(PARENT) source. sourceType distinguishes ROOT from MOUNT;
// MOUNT additionally requires a MOUNT-typed source, which callers signal
// by passing DiskSourceMount.
func NewPersistentDisk(sourceType DiskSourceType, persistenceID, principal, containerPath string) *Disk {
	return &Disk{
		SourceType:    sourceType,
		PersistenceID: persistenceID,
		Principal:     principal,
		ContainerPath: containerPath,
	}
}
