/*
Package manifest turns multi-document YAML manifests into creation requests.

A manifest holds any number of documents separated by "---":

	kind: Namespace
	metadata:
	  name: shop
	---
	kind: Deployment
	metadata:
	  name: web
	  namespace: shop
	spec:
	  replicas: 3
	  containers:
	    - name: nginx
	      image: nginx:1.27

Supported kinds are Namespace, ConfigMap (with a top-level data map),
Service, Pod and Deployment. Kind names match case-insensitively and
namespaced resources default to the "default" namespace.

Apply creates namespaces, then config maps, services, pods and deployments,
and finally re-fetches every kind it touched so the snapshot reflects the
new resources.
*/
package manifest
